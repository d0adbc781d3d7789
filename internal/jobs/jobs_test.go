package jobs

import (
	"context"
	"errors"
	"testing"

	"equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGauge struct{ v float64 }

func (g *fakeGauge) Set(v float64) { g.v = v }

type stockByClinic map[string][]inventory.Item

func (s stockByClinic) LowStock(_ context.Context, clinicID string) ([]inventory.Item, error) {
	if clinicID == "broken" {
		return nil, errors.New("store down")
	}
	return s[clinicID], nil
}

func TestCheckLowStock(t *testing.T) {
	src := stockByClinic{
		"c1": {{ID: "i1", Stock: 3, Minimum: 5}, {ID: "i2", Stock: 0, Minimum: 1}},
		"c2": {{ID: "i3", Stock: 1, Minimum: 2}},
	}
	g := &fakeGauge{}

	err := CheckLowStock(src, []string{"c1", "c2"}, g, logger.Nop())(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, g.v)

	err = CheckLowStock(src, []string{"c1", "broken"}, g, logger.Nop())(context.Background())
	assert.ErrorContains(t, err, "clinic broken")
	assert.Equal(t, 2.0, g.v)
}

func TestReconcileJob(t *testing.T) {
	svc := users.NewService(memory.NewUserRepo(), logger.Nop(), nil)
	ctx := context.Background()
	_, err := svc.Create(ctx, "c1", users.CreateInput{Name: "A", Email: "a@x.com", Role: users.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, Reconcile(svc, logger.Nop())(ctx))
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(logger.Nop())
	assert.NoError(t, s.Add("", "disabled", func(context.Context) error { return nil }))
	assert.Error(t, s.Add("not a cron", "broken", func(context.Context) error { return nil }))
	assert.NoError(t, s.Add("*/5 * * * *", "ok", func(context.Context) error { return nil }))

	s.Start()
	s.Stop(context.Background())
}

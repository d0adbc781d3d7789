package users_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "equine-clinic/internal/adapters/storage/memory"
	"equine-clinic/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) *time.Time {
	t := time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC)
	return &t
}

// flakyRepo falla al borrar los ids marcados.
type flakyRepo struct {
	users.Repository
	failOn map[string]bool
}

func (r flakyRepo) Delete(ctx context.Context, id string) error {
	if r.failOn[id] {
		return errors.New("connection reset")
	}
	return r.Repository.Delete(ctx, id)
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func seed(t *testing.T, repo users.Repository, list ...users.User) {
	t.Helper()
	for _, u := range list {
		require.NoError(t, repo.Create(context.Background(), u))
	}
}

func TestReconcile_KeepsNewestAndIsIdempotent(t *testing.T) {
	repo := mem.NewUserRepo()
	seed(t, repo,
		users.User{ID: "a1", ClinicID: "c1", Email: "ana@equinmedical.com", CreatedAt: at(1)},
		users.User{ID: "a2", ClinicID: "c1", Email: "ana@equinmedical.com", CreatedAt: at(9)},
		users.User{ID: "a3", ClinicID: "c1", Email: "ana@equinmedical.com"},
		users.User{ID: "b1", ClinicID: "c1", Email: "beto@equinmedical.com", CreatedAt: at(3)},
		users.User{ID: "z1", ClinicID: "c2", Email: "Ana@equinmedical.com", CreatedAt: at(20)},
	)
	deleted := &countingCounter{}
	svc := users.NewService(repo, nil, deleted)
	ctx := context.Background()

	reports, err := svc.ReconcileDuplicates(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1, "el email se compara exacto")
	assert.Equal(t, "ana@equinmedical.com", reports[0].Email)
	assert.Equal(t, "a2", reports[0].Kept)
	assert.ElementsMatch(t, []string{"a1", "a3"}, reports[0].Deleted)
	assert.Empty(t, reports[0].Error)
	assert.Equal(t, 2, deleted.n)

	again, err := svc.ReconcileDuplicates(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReconcile_TiesKeepListingOrder(t *testing.T) {
	repo := mem.NewUserRepo()
	seed(t, repo,
		users.User{ID: "x1", ClinicID: "c1", Email: "dup@equinmedical.com"},
		users.User{ID: "x2", ClinicID: "c1", Email: "dup@equinmedical.com"},
	)
	reports, err := users.NewService(repo, nil, nil).ReconcileDuplicates(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "x1", reports[0].Kept)
}

func TestReconcile_RecordsFailuresAndContinues(t *testing.T) {
	base := mem.NewUserRepo()
	seed(t, base,
		users.User{ID: "a1", ClinicID: "c1", Email: "ana@equinmedical.com", CreatedAt: at(1)},
		users.User{ID: "a2", ClinicID: "c1", Email: "ana@equinmedical.com", CreatedAt: at(2)},
		users.User{ID: "b1", ClinicID: "c1", Email: "beto@equinmedical.com", CreatedAt: at(1)},
		users.User{ID: "b2", ClinicID: "c1", Email: "beto@equinmedical.com", CreatedAt: at(2)},
	)
	svc := users.NewService(flakyRepo{Repository: base, failOn: map[string]bool{"a1": true}}, nil, nil)

	reports, err := svc.ReconcileDuplicates(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "ana@equinmedical.com", reports[0].Email)
	assert.Empty(t, reports[0].Deleted)
	assert.Contains(t, reports[0].Error, "connection reset")

	assert.Equal(t, "beto@equinmedical.com", reports[1].Email)
	assert.Equal(t, []string{"b1"}, reports[1].Deleted)
	assert.Empty(t, reports[1].Error)
}

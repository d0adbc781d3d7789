package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/billing"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/events"
	"equine-clinic/internal/domain/histories"
	"equine-clinic/internal/domain/horses"
	"equine-clinic/internal/domain/inventory"
	"equine-clinic/internal/domain/owners"
	"equine-clinic/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// setupDB levanta un Postgres compartido (una vez por corrida) con las migraciones aplicadas.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(func() { sharedDSN, initErr = startContainer() })
	require.NoError(t, initErr)

	db, err := Open(context.Background(), Config{DSN: sharedDSN})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "clinic",
				"POSTGRES_PASSWORD": "clinic",
				"POSTGRES_DB":       "clinic",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("mapped port: %w", err)
	}
	dsn := fmt.Sprintf("postgres://clinic:clinic@%s:%s/clinic?sslmode=disable", host, port.Port())

	db, err := Open(ctx, Config{DSN: dsn})
	if err != nil {
		return "", err
	}
	defer db.Close()
	if _, err := Migrate(ctx, db); err != nil {
		return "", err
	}
	return dsn, nil
}

var now = time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

func TestOwnersRepo_CRUD(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewOwnersRepo(db)
	clinic := uuid.NewString()

	o := owners.Owner{ID: uuid.NewString(), ClinicID: clinic, Name: "Ana", Phone: "0414", NationalID: "V-1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, o))
	assert.ErrorIs(t, repo.Create(ctx, o), apperr.ErrAlreadyExists)

	o.Name = "Ana María"
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, "V-1", got.NationalID)

	list, err := repo.List(ctx, clinic)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, o.ID))
	_, err = repo.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, o.ID), apperr.ErrNotFound)
}

func TestHorsesRepo_OptionalColumns(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewHorsesRepo(db)

	h := horses.Horse{
		ID: uuid.NewString(), ClinicID: uuid.NewString(), Name: "Relámpago", OwnerID: "o1", Sex: horses.SexMale,
		Medications: []horses.Medication{{Name: "Fenilbutazona", Start: calendar.NewDate(2024, 3, 1)}},
		CreatedAt:   now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, h))

	got, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, got.StableID)
	assert.True(t, got.LastCheckup.IsZero())
	require.Len(t, got.Medications, 1)
	assert.Equal(t, calendar.NewDate(2024, 3, 1), got.Medications[0].Start)

	require.NoError(t, repo.SetLastCheckup(ctx, h.ID, calendar.NewDate(2024, 3, 14)))
	got, err = repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, 3, 14), got.LastCheckup)
}

func TestInventoryRepo_AdjustStockFloorsAtZero(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewInventoryRepo(db)

	it := inventory.Item{ID: uuid.NewString(), ClinicID: uuid.NewString(), Name: "Jeringas", Stock: 3, Minimum: 5, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, it))

	got, err := repo.AdjustStock(ctx, it.ID, -10)
	require.NoError(t, err)
	assert.Zero(t, got.Stock)

	got, err = repo.AdjustStock(ctx, it.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Stock)

	_, err = repo.AdjustStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEventsRepo_ApplyHistoryMergesServices(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewEventsRepo(db)

	e := events.Event{
		ID: uuid.NewString(), ClinicID: uuid.NewString(), Name: "Copa", Type: "competencia", Status: "programado",
		StartDate: calendar.NewDate(2024, 3, 10), Services: []string{"Vacuna"}, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, e))

	require.NoError(t, repo.ApplyHistory(ctx, e.ID, 98.6, []string{"Revisión", "Vacuna", "Revisión"}))
	require.NoError(t, repo.AddImage(ctx, e.ID, "events/x/1.jpg"))

	// Update no pisa contadores ni imágenes
	e.Name = "Copa Nacional"
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copa Nacional", got.Name)
	assert.Equal(t, 1, got.AnimalsServed)
	assert.InDelta(t, 98.6, got.Revenue, 1e-9)
	assert.Equal(t, []string{"Vacuna", "Revisión"}, got.Services)
	assert.Equal(t, []string{"events/x/1.jpg"}, got.Images)

	from := calendar.NewDate(2024, 3, 11)
	list, err := repo.List(ctx, e.ClinicID, events.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppointmentsRepo_RangeAndDetach(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewAppointmentsRepo(db)
	clinic := uuid.NewString()

	for i, day := range []int{10, 11, 17, 18} {
		require.NoError(t, repo.Create(ctx, appointments.Appointment{
			ID: fmt.Sprintf("%s-%d", clinic, i), ClinicID: clinic, HorseID: "h1", EventID: "ev1",
			Date: calendar.NewDate(2024, 3, day), Time: "09:00", CreatedAt: now, UpdatedAt: now,
		}))
	}

	week, err := repo.ListBetween(ctx, clinic, calendar.NewDate(2024, 3, 11), calendar.NewDate(2024, 3, 17))
	require.NoError(t, err)
	assert.Len(t, week, 2)

	done, err := repo.SetCompleted(ctx, clinic+"-0", true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	require.NoError(t, repo.DetachEvent(ctx, "ev1"))
	linked, err := repo.ListByEvent(ctx, "ev1")
	require.NoError(t, err)
	assert.Empty(t, linked)

	require.NoError(t, repo.DeleteByHorse(ctx, "h1"))
	all, err := repo.List(ctx, clinic)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoriesRepo_InvoiceLinkIsCompareAndSet(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewHistoriesRepo(db)

	h := histories.History{
		ID: uuid.NewString(), ClinicID: uuid.NewString(), HorseID: "h1", VeterinarianID: "v1",
		Date:  calendar.NewDate(2024, 3, 14),
		Items: []billing.LineItem{{Description: "Consulta", Quantity: 1, UnitPrice: 85}},
		TaxRate: 16, NetTotal: 85, Tax: 13.6, TotalWithTax: 98.6,
		Consumed:  []inventory.Usage{{ItemID: "i1", Quantity: 2}},
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, h))

	require.NoError(t, repo.MarkInvoiced(ctx, h.ID, "inv-1"))
	assert.ErrorIs(t, repo.MarkInvoiced(ctx, h.ID, "inv-2"), apperr.ErrConflict)
	assert.ErrorIs(t, repo.MarkInvoiced(ctx, "missing", "inv-3"), apperr.ErrNotFound)

	// Update conserva el enlace
	h.Observations = "control"
	require.NoError(t, repo.Update(ctx, h))
	got, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.True(t, got.InvoiceGenerated)
	assert.Equal(t, "inv-1", got.InvoiceID)
	assert.Equal(t, h.Items, got.Items)
	assert.Equal(t, h.Consumed, got.Consumed)

	require.NoError(t, repo.ClearInvoice(ctx, h.ID, "other"))
	got, _ = repo.GetByID(ctx, h.ID)
	assert.True(t, got.InvoiceGenerated)

	require.NoError(t, repo.ClearInvoice(ctx, h.ID, "inv-1"))
	got, _ = repo.GetByID(ctx, h.ID)
	assert.False(t, got.InvoiceGenerated)
	assert.Empty(t, got.InvoiceID)
}

func TestSequencer_PerClinicAndYear(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	seq := NewSequencer(db)
	clinic := uuid.NewString()

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx, clinic, 2024)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := seq.Next(ctx, clinic, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUsersRepo_ListByEmail(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewUsersRepo(db)
	email := uuid.NewString() + "@example.com"

	older := now.Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, users.User{ID: uuid.NewString(), ClinicID: "c1", Name: "A", Email: email, Role: users.RoleAdmin, Active: true, CreatedAt: &older, UpdatedAt: now}))
	require.NoError(t, repo.Create(ctx, users.User{ID: uuid.NewString(), ClinicID: "c1", Name: "B", Email: email, Role: users.RoleAdmin, UpdatedAt: now}))

	list, err := repo.ListByEmail(ctx, email)
	require.NoError(t, err)
	require.Len(t, list, 2)

	var withoutStamp int
	for _, u := range list {
		if u.CreatedAt == nil {
			withoutStamp++
		}
	}
	assert.Equal(t, 1, withoutStamp)
}

func TestTxManager_RollsBack(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewOwnersRepo(db)
	tm := NewTxManager(db)
	id := uuid.NewString()
	boom := errors.New("boom")

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, owners.Owner{ID: id, ClinicID: "c1", Name: "X", CreatedAt: now, UpdatedAt: now}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

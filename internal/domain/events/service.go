package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/validation"
	"equine-clinic/internal/ports/blob"

	"github.com/google/uuid"
)

// Detacher es una colección con registros que apuntan a un evento.
// Al borrar el evento se les quita la referencia, no se borran.
type Detacher interface {
	DetachEvent(ctx context.Context, eventID string) error
}

type Service struct {
	repo       Repository
	blobs      blob.Store
	presignTTL time.Duration
	now        func() time.Time

	histories HistorySource
	detachers []namedDetacher
}

type namedDetacher struct {
	name string
	d    Detacher
}

func NewService(repo Repository, blobs blob.Store, presignTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		blobs:      blobs,
		presignTTL: presignTTL,
		now:        time.Now,
	}
}

func (s *Service) RegisterDetacher(name string, d Detacher) {
	s.detachers = append(s.detachers, namedDetacher{name: name, d: d})
}

// SetHistorySource conecta la fuente de historias vinculadas que usa Stats.
func (s *Service) SetHistorySource(h HistorySource) {
	s.histories = h
}

type CreateInput struct {
	Name        string        `json:"name" validate:"required"`
	Type        Type          `json:"type"`
	Status      Status        `json:"status"`
	StartDate   calendar.Date `json:"start_date"`
	EndDate     calendar.Date `json:"end_date"`
	Location    string        `json:"location"`
	Organizer   string        `json:"organizer"`
	Contact     string        `json:"contact"`
	Description string        `json:"description"`
	Expenses    float64       `json:"expenses" validate:"gte=0"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Organizer = strings.TrimSpace(in.Organizer)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Description = strings.TrimSpace(in.Description)
	if in.Type == "" {
		in.Type = TypeOther
	}
	if in.Status == "" {
		in.Status = StatusScheduled
	}
}

func (in CreateInput) validate() error {
	var errs []error
	errs = append(errs, validation.Struct(in))
	if !in.Type.Valid() {
		errs = append(errs, apperr.Invalid("type", "must be one of competencia exposicion clinica otro"))
	}
	if !in.Status.Valid() {
		errs = append(errs, apperr.Invalid("status", "must be one of programado en_curso finalizado cancelado"))
	}
	if in.StartDate.IsZero() {
		errs = append(errs, apperr.Invalid("start_date", "required"))
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		errs = append(errs, apperr.Invalid("end_date", "must not be before start_date"))
	}
	return validation.Join(errs...)
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Event, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return Event{}, err
	}

	now := s.now()
	e := Event{
		ID:          uuid.NewString(),
		ClinicID:    clinicID,
		Name:        in.Name,
		Type:        in.Type,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    in.Location,
		Organizer:   in.Organizer,
		Contact:     in.Contact,
		Description: in.Description,
		Expenses:    in.Expenses,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, apperr.Collaborator("events.create", err)
	}
	return e, nil
}

type UpdateInput struct {
	Name        *string        `json:"name"`
	Type        *Type          `json:"type"`
	Status      *Status        `json:"status"`
	StartDate   *calendar.Date `json:"start_date"`
	EndDate     *calendar.Date `json:"end_date"`
	Location    *string        `json:"location"`
	Organizer   *string        `json:"organizer"`
	Contact     *string        `json:"contact"`
	Description *string        `json:"description"`
	Expenses    *float64       `json:"expenses"`
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Event, error) {
	e, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Event{}, err
	}

	m := CreateInput{
		Name: e.Name, Type: e.Type, Status: e.Status, StartDate: e.StartDate, EndDate: e.EndDate,
		Location: e.Location, Organizer: e.Organizer, Contact: e.Contact, Description: e.Description,
		Expenses: e.Expenses,
	}
	patch(&m.Name, in.Name)
	patch(&m.Type, in.Type)
	patch(&m.Status, in.Status)
	patch(&m.StartDate, in.StartDate)
	patch(&m.EndDate, in.EndDate)
	patch(&m.Location, in.Location)
	patch(&m.Organizer, in.Organizer)
	patch(&m.Contact, in.Contact)
	patch(&m.Description, in.Description)
	patch(&m.Expenses, in.Expenses)
	m.normalize()
	if err := m.validate(); err != nil {
		return Event{}, err
	}

	e.Name, e.Type, e.Status = m.Name, m.Type, m.Status
	e.StartDate, e.EndDate = m.StartDate, m.EndDate
	e.Location, e.Organizer, e.Contact, e.Description = m.Location, m.Organizer, m.Contact, m.Description
	e.Expenses = m.Expenses
	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, apperr.Collaborator("events.update", err)
	}
	return e, nil
}

func patch[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, apperr.Invalid("event_id", "required")
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, apperr.Collaborator("events.get", err)
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Event, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if e.ClinicID != clinicID {
		return Event{}, apperr.NotFound("event", id)
	}
	return e, nil
}

func (s *Service) Exists(ctx context.Context, clinicID, id string) error {
	_, err := s.Get(ctx, clinicID, id)
	return err
}

// Delete desvincula historias, citas y facturas (EventID vacío) y borra el evento.
// Igual que la cascada de caballos, sigue aunque falle una colección.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	e, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return err
	}

	var errs []error
	for _, d := range s.detachers {
		if err := d.d.DetachEvent(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		errs = append(errs, err)
	}
	if s.blobs != nil {
		for _, key := range e.Images {
			if _, err := s.blobs.Delete(ctx, key); err != nil {
				errs = append(errs, fmt.Errorf("image %s: %w", key, err))
			}
		}
	}
	return apperr.Collaborator("events.delete", errors.Join(errs...))
}

// Search combina el filtro del repo con la búsqueda por nombre, lugar,
// fecha, tipo y estado. Orden: fecha de inicio más reciente primero.
func (s *Service) Search(ctx context.Context, clinicID, q string, filter ListFilter) ([]Event, error) {
	limit := filter.Limit
	filter.Limit = 0
	items, err := s.repo.List(ctx, clinicID, filter)
	if err != nil {
		return nil, apperr.Collaborator("events.list", err)
	}

	out := search.Filter(items, q, func(e Event) []string {
		return []string{
			e.Name, e.Location, e.StartDate.String(), calendar.FormatDisplay(e.StartDate),
			string(e.Type), string(e.Status),
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Upcoming devuelve los primeros n eventos programados o en curso,
// por fecha de inicio ascendente.
func (s *Service) Upcoming(ctx context.Context, clinicID string, n int) ([]Event, error) {
	items, err := s.repo.List(ctx, clinicID, ListFilter{Statuses: []Status{StatusScheduled, StatusInProgress}})
	if err != nil {
		return nil, apperr.Collaborator("events.list", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].StartDate.Before(items[j].StartDate) })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// ApplyHistory actualiza los contadores del evento al registrar una historia.
func (s *Service) ApplyHistory(ctx context.Context, eventID string, total float64, services []string) error {
	return apperr.Collaborator("events.apply_history", s.repo.ApplyHistory(ctx, eventID, total, services))
}

package appointments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/calendar"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/validation"

	"github.com/google/uuid"
)

type horseLookup interface {
	Exists(ctx context.Context, clinicID, id string) error
	Names(ctx context.Context, clinicID string) (map[string]string, error)
}

type eventChecker interface {
	Exists(ctx context.Context, clinicID, id string) error
}

type Service struct {
	repo   Repository
	horses horseLookup
	events eventChecker
	now    func() time.Time
}

func NewService(repo Repository, horses horseLookup, events eventChecker) *Service {
	return &Service{repo: repo, horses: horses, events: events, now: time.Now}
}

// CreateInput lleva la fecha ya parseada; el handler acepta ISO o "14 mar 2024".
type CreateInput struct {
	HorseID  string        `json:"horse_id" validate:"required"`
	Date     calendar.Date `json:"date"`
	Time     string        `json:"time"`
	Type     string        `json:"type" validate:"required"`
	Location string        `json:"location"`
	Notes    string        `json:"notes"`
	EventID  string        `json:"event_id"`
}

func (in *CreateInput) normalize() {
	in.HorseID = strings.TrimSpace(in.HorseID)
	in.Time = strings.TrimSpace(in.Time)
	in.Type = strings.TrimSpace(in.Type)
	in.Location = strings.TrimSpace(in.Location)
	in.Notes = strings.TrimSpace(in.Notes)
	in.EventID = strings.TrimSpace(in.EventID)
}

func (s *Service) validate(ctx context.Context, clinicID string, in CreateInput) error {
	errs := []error{validation.Struct(in)}
	if in.Date.IsZero() {
		errs = append(errs, apperr.Invalid("date", "required"))
	}
	if !calendar.ValidClock(in.Time) {
		errs = append(errs, apperr.Invalid("time", "must be HH:MM"))
	}
	if err := validation.Join(errs...); err != nil {
		return err
	}

	if err := s.horses.Exists(ctx, clinicID, in.HorseID); err != nil {
		return refError("horse_id", err)
	}
	if in.EventID != "" {
		if err := s.events.Exists(ctx, clinicID, in.EventID); err != nil {
			return refError("event_id", err)
		}
	}
	return nil
}

// refError convierte un not found de una referencia en error de validación.
func refError(field string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Invalid(field, "not found")
	}
	return err
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Appointment, error) {
	in.normalize()
	if err := s.validate(ctx, clinicID, in); err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		HorseID:   in.HorseID,
		Date:      in.Date,
		Time:      in.Time,
		Type:      in.Type,
		Location:  in.Location,
		Notes:     in.Notes,
		EventID:   in.EventID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, apperr.Collaborator("appointments.create", err)
	}
	return a, nil
}

type UpdateInput struct {
	HorseID  *string
	Date     *calendar.Date
	Time     *string
	Type     *string
	Location *string
	Notes    *string
	EventID  *string
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Appointment, error) {
	a, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return Appointment{}, err
	}

	m := CreateInput{
		HorseID: a.HorseID, Date: a.Date, Time: a.Time, Type: a.Type,
		Location: a.Location, Notes: a.Notes, EventID: a.EventID,
	}
	if in.HorseID != nil {
		m.HorseID = *in.HorseID
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.Time != nil {
		m.Time = *in.Time
	}
	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.Location != nil {
		m.Location = *in.Location
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	if in.EventID != nil {
		m.EventID = *in.EventID
	}
	m.normalize()
	if err := s.validate(ctx, clinicID, m); err != nil {
		return Appointment{}, err
	}

	a.HorseID, a.Date, a.Time, a.Type = m.HorseID, m.Date, m.Time, m.Type
	a.Location, a.Notes, a.EventID = m.Location, m.Notes, m.EventID
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, apperr.Collaborator("appointments.update", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, apperr.Invalid("appointment_id", "required")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, apperr.Collaborator("appointments.get", err)
	}
	if a.ClinicID != clinicID {
		return Appointment{}, apperr.NotFound("appointment", id)
	}
	return a, nil
}

// Delete es la cancelación de la cita.
func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("appointments.delete", s.repo.Delete(ctx, id))
}

// Complete marca la cita como realizada.
func (s *Service) Complete(ctx context.Context, clinicID, id string) (Appointment, error) {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return Appointment{}, err
	}
	a, err := s.repo.SetCompleted(ctx, id, true)
	if err != nil {
		return Appointment{}, apperr.Collaborator("appointments.complete", err)
	}
	return a, nil
}

// Search busca por nombre del caballo, tipo, fecha (ISO o "14 mar 2024") y lugar.
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]Appointment, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("appointments.list", err)
	}
	names := map[string]string{}
	if strings.TrimSpace(q) != "" {
		if names, err = s.horses.Names(ctx, clinicID); err != nil {
			return nil, err
		}
	}
	out := search.Filter(items, q, func(a Appointment) []string {
		return []string{names[a.HorseID], a.Type, a.Date.String(), calendar.FormatDisplay(a.Date), a.Location}
	})
	sortAppointments(out)
	return out, nil
}

func (s *Service) ListByHorse(ctx context.Context, clinicID, horseID string) ([]Appointment, error) {
	if err := s.horses.Exists(ctx, clinicID, horseID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByHorse(ctx, horseID)
	if err != nil {
		return nil, apperr.Collaborator("appointments.list_by_horse", err)
	}
	sortAppointments(items)
	return items, nil
}

func (s *Service) ListByEvent(ctx context.Context, clinicID, eventID string) ([]Appointment, error) {
	if err := s.events.Exists(ctx, clinicID, eventID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Collaborator("appointments.list_by_event", err)
	}
	sortAppointments(items)
	return items, nil
}

func (s *Service) ListBetween(ctx context.Context, clinicID string, from, to calendar.Date) ([]Appointment, error) {
	if to.Before(from) {
		return nil, apperr.Invalid("to", "must not be before from")
	}
	items, err := s.repo.ListBetween(ctx, clinicID, from, to)
	if err != nil {
		return nil, apperr.Collaborator("appointments.list_between", err)
	}
	sortAppointments(items)
	return items, nil
}

// Pending devuelve las citas no completadas desde from (inclusive), en orden.
func (s *Service) Pending(ctx context.Context, clinicID string, from calendar.Date) ([]Appointment, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("appointments.list", err)
	}
	out := make([]Appointment, 0)
	for _, a := range items {
		if !a.Completed && !a.Date.Before(from) {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out, nil
}

// DeleteByHorse es parte de la cascada al borrar un caballo.
func (s *Service) DeleteByHorse(ctx context.Context, horseID string) error {
	return s.repo.DeleteByHorse(ctx, horseID)
}

// DetachEvent deja sin evento las citas vinculadas.
func (s *Service) DetachEvent(ctx context.Context, eventID string) error {
	return s.repo.DetachEvent(ctx, eventID)
}

func sortAppointments(items []Appointment) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Before(items[j]) })
}

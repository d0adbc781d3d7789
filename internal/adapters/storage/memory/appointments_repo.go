package memory

import (
	"context"

	"equine-clinic/internal/domain/appointments"
	"equine-clinic/internal/domain/calendar"
)

type appointmentRepo struct {
	t *table[appointments.Appointment]
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{t: newTable("appointment", func(a appointments.Appointment) string { return a.ID })}
}

func (r *appointmentRepo) Create(_ context.Context, a appointments.Appointment) error {
	return r.t.insert(a)
}

func (r *appointmentRepo) Update(_ context.Context, a appointments.Appointment) error {
	return r.t.update(a)
}

func (r *appointmentRepo) GetByID(_ context.Context, id string) (appointments.Appointment, error) {
	return r.t.get(id)
}

func (r *appointmentRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

func (r *appointmentRepo) List(_ context.Context, clinicID string) ([]appointments.Appointment, error) {
	return r.t.filter(func(a appointments.Appointment) bool { return a.ClinicID == clinicID }), nil
}

func (r *appointmentRepo) ListByHorse(_ context.Context, horseID string) ([]appointments.Appointment, error) {
	return r.t.filter(func(a appointments.Appointment) bool { return a.HorseID == horseID }), nil
}

func (r *appointmentRepo) ListByEvent(_ context.Context, eventID string) ([]appointments.Appointment, error) {
	return r.t.filter(func(a appointments.Appointment) bool { return a.EventID == eventID }), nil
}

func (r *appointmentRepo) ListBetween(_ context.Context, clinicID string, from, to calendar.Date) ([]appointments.Appointment, error) {
	return r.t.filter(func(a appointments.Appointment) bool {
		return a.ClinicID == clinicID && !a.Date.Before(from) && !a.Date.After(to)
	}), nil
}

func (r *appointmentRepo) SetCompleted(_ context.Context, id string, completed bool) (appointments.Appointment, error) {
	return r.t.mutate(id, func(a *appointments.Appointment) error {
		a.Completed = completed
		return nil
	})
}

func (r *appointmentRepo) DeleteByHorse(_ context.Context, horseID string) error {
	r.t.removeWhere(func(a appointments.Appointment) bool { return a.HorseID == horseID })
	return nil
}

func (r *appointmentRepo) DetachEvent(_ context.Context, eventID string) error {
	r.t.mutateWhere(
		func(a appointments.Appointment) bool { return a.EventID == eventID },
		func(a *appointments.Appointment) { a.EventID = "" },
	)
	return nil
}

package appointments

import (
	"time"

	"equine-clinic/internal/domain/calendar"
)

type Appointment struct {
	ID       string
	ClinicID string
	HorseID  string

	Date calendar.Date
	Time string // "HH:MM"

	Type     string
	Location string // texto libre o nombre de caballeriza
	Notes    string

	Completed bool
	EventID   string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Before ordena por fecha y luego por hora.
func (a Appointment) Before(b Appointment) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	return a.Time < b.Time
}

func (a Appointment) entry() calendar.Entry {
	return calendar.Entry{ID: a.ID, Date: a.Date, Time: a.Time}
}

package veterinarians

import "time"

type Veterinarian struct {
	ID        string
	ClinicID  string
	Name      string
	Specialty string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

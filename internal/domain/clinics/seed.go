package clinics

import (
	"context"
	"errors"
	"strings"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/users"
	"equine-clinic/internal/domain/veterinarians"
)

type userSeeder interface {
	FindActiveByEmail(ctx context.Context, email string) (users.User, error)
	Create(ctx context.Context, clinicID string, in users.CreateInput) (users.User, error)
}

type vetSeeder interface {
	Search(ctx context.Context, clinicID, q string) ([]veterinarians.Veterinarian, error)
	Create(ctx context.Context, clinicID string, in veterinarians.CreateInput) (veterinarians.Veterinarian, error)
}

type SeedInput struct {
	ClinicID      string
	ClinicName    string
	AdminEmail    string
	AdminPassword string // vacío: el admin solo entra por el proveedor hosted
}

// SeedResult indica qué se creó en esta corrida.
type SeedResult struct {
	ClinicCreated bool `json:"clinic_created"`
	AdminCreated  bool `json:"admin_created"`
	VetCreated    bool `json:"vet_created"`
}

// Seed deja lista una instalación nueva: clínica por defecto, usuario admin
// y un veterinario de ejemplo. Correrlo de nuevo no duplica nada.
func (s *Service) Seed(ctx context.Context, usersSvc userSeeder, vets vetSeeder, in SeedInput) (SeedResult, error) {
	var res SeedResult
	in.ClinicID = strings.TrimSpace(in.ClinicID)
	if in.ClinicID == "" {
		return res, apperr.Invalid("clinic_id", "required")
	}

	_, err := s.repo.GetByID(ctx, in.ClinicID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		now := s.now()
		c := Clinic{
			ID:        in.ClinicID,
			Name:      in.ClinicName,
			Email:     in.AdminEmail,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return res, apperr.Collaborator("clinics.seed", err)
		}
		res.ClinicCreated = true
	case err != nil:
		return res, apperr.Collaborator("clinics.seed", err)
	}

	_, err = usersSvc.FindActiveByEmail(ctx, in.AdminEmail)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		_, err := usersSvc.Create(ctx, in.ClinicID, users.CreateInput{
			Name:     "Administrador",
			Email:    in.AdminEmail,
			Role:     users.RoleAdmin,
			Password: in.AdminPassword,
		})
		if err != nil {
			return res, err
		}
		res.AdminCreated = true
	case err != nil:
		return res, err
	}

	existing, err := vets.Search(ctx, in.ClinicID, "")
	if err != nil {
		return res, err
	}
	if len(existing) == 0 {
		_, err := vets.Create(ctx, in.ClinicID, veterinarians.CreateInput{
			Name:      "Dr. Andrés Figueroa",
			Specialty: "Medicina deportiva equina",
		})
		if err != nil {
			return res, err
		}
		res.VetCreated = true
	}
	return res, nil
}

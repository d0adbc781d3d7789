package clinics

import (
	"context"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/platform/validation"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Get(ctx context.Context, clinicID string) (Clinic, error) {
	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return Clinic{}, apperr.Invalid("clinic_id", "required")
	}
	c, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return Clinic{}, apperr.Collaborator("clinics.get", err)
	}
	return c, nil
}

type UpdateInput struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Logo      *string `json:"logo"`
	Instagram *string `json:"instagram"`
	TaxID     *string `json:"tax_id"`
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// Update cambia los datos de la clínica que se muestran en facturas y encabezados.
func (s *Service) Update(ctx context.Context, clinicID string, in UpdateInput) (Clinic, error) {
	c, err := s.Get(ctx, clinicID)
	if err != nil {
		return Clinic{}, err
	}

	var errs []error
	if v := trimmed(in.Name); v != nil {
		if *v == "" {
			errs = append(errs, apperr.Invalid("name", "required"))
		}
		c.Name = *v
	}
	if v := trimmed(in.Address); v != nil {
		c.Address = *v
	}
	if v := trimmed(in.Phone); v != nil {
		errs = append(errs, validation.Phone("phone", *v))
		c.Phone = *v
	}
	if v := trimmed(in.Email); v != nil {
		errs = append(errs, validation.Var("email", *v, "omitempty,email"))
		c.Email = *v
	}
	if v := trimmed(in.Logo); v != nil {
		c.Logo = *v
	}
	if v := trimmed(in.Instagram); v != nil {
		c.Instagram = *v
	}
	if v := trimmed(in.TaxID); v != nil {
		c.TaxID = *v
	}
	if err := validation.Join(errs...); err != nil {
		return Clinic{}, err
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Clinic{}, apperr.Collaborator("clinics.update", err)
	}
	return c, nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"equine-clinic/internal/domain/apperr"
	"equine-clinic/internal/domain/search"
	"equine-clinic/internal/platform/logger"
	"equine-clinic/internal/platform/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type counter interface{ Inc() }

type nopCounter struct{}

func (nopCounter) Inc() {}

type Service struct {
	repo    Repository
	log     logger.Logger
	deleted counter
	now     func() time.Time
}

// NewService. log y deleted (contador de duplicados borrados) pueden ser nil.
func NewService(repo Repository, log logger.Logger, deleted counter) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if deleted == nil {
		deleted = nopCounter{}
	}
	return &Service{repo: repo, log: log, deleted: deleted, now: time.Now}
}

type CreateInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      Role   `json:"role" validate:"required"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

func (in *CreateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = Role(strings.TrimSpace(string(in.Role)))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Specialty = strings.TrimSpace(in.Specialty)
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func invalidRole() error {
	return apperr.Invalid("role", "must be admin, veterinario, asistente or recepcionista")
}

// HashPassword aplica bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (User, error) {
	in.normalize()
	errs := []error{validation.Struct(in), validation.Phone("phone", in.Phone)}
	if in.Role != "" && !in.Role.Valid() {
		errs = append(errs, invalidRole())
	}
	if strings.TrimSpace(clinicID) == "" {
		errs = append(errs, apperr.Invalid("clinic_id", "required"))
	}
	if err := validation.Join(errs...); err != nil {
		return User{}, err
	}

	existing, err := s.repo.ListByEmail(ctx, in.Email)
	if err != nil {
		return User{}, apperr.Collaborator("users.list_by_email", err)
	}
	if len(existing) > 0 {
		return User{}, fmt.Errorf("user %s: %w", in.Email, apperr.ErrAlreadyExists)
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Active:    true,
		Phone:     in.Phone,
		Specialty: in.Specialty,
		CreatedAt: &now,
		UpdatedAt: now,
	}
	if in.Password != "" {
		if u.PasswordHash, err = HashPassword(in.Password); err != nil {
			return User{}, err
		}
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, apperr.Collaborator("users.create", err)
	}
	return u, nil
}

type UpdateInput struct {
	Name      *string
	Role      *Role
	Active    *bool
	Phone     *string
	Specialty *string
	Password  *string
}

func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (User, error) {
	u, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return User{}, apperr.Invalid("name", "required")
		}
		u.Name = v
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return User{}, invalidRole()
		}
		u.Role = *in.Role
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		if err := validation.Phone("phone", v); err != nil {
			return User{}, err
		}
		u.Phone = v
	}
	if in.Specialty != nil {
		u.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return User{}, apperr.Invalid("password", "must be at least 8 characters")
		}
		if u.PasswordHash, err = HashPassword(*in.Password); err != nil {
			return User{}, err
		}
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, apperr.Collaborator("users.update", err)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, clinicID, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperr.Invalid("user_id", "required")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, apperr.Collaborator("users.get", err)
	}
	if u.ClinicID != clinicID {
		return User{}, apperr.NotFound("user", id)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := s.Get(ctx, clinicID, id); err != nil {
		return err
	}
	return apperr.Collaborator("users.delete", s.repo.Delete(ctx, id))
}

// Search busca por nombre, email y rol.
func (s *Service) Search(ctx context.Context, clinicID, q string) ([]User, error) {
	items, err := s.repo.List(ctx, clinicID)
	if err != nil {
		return nil, apperr.Collaborator("users.list", err)
	}
	out := search.Filter(items, q, func(u User) []string { return []string{u.Name, u.Email, string(u.Role)} })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// FindActiveByEmail devuelve el usuario activo con ese email.
// Si hubiera duplicados sin reconciliar gana el más reciente.
func (s *Service) FindActiveByEmail(ctx context.Context, email string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, apperr.Invalid("email", "required")
	}
	items, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return User{}, apperr.Collaborator("users.list_by_email", err)
	}

	var (
		winner User
		found  bool
	)
	for _, u := range items {
		if !u.Active {
			continue
		}
		if !found || u.createdUnix() > winner.createdUnix() {
			winner, found = u, true
		}
	}
	if !found {
		return User{}, apperr.NotFound("user", email)
	}
	return winner, nil
}

// Credentials es lo que necesita el proveedor local para validar un password.
func (s *Service) Credentials(ctx context.Context, email string) (id, passwordHash string, err error) {
	u, err := s.FindActiveByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if u.PasswordHash == "" {
		return "", "", errors.New("user has no local password")
	}
	return u.ID, u.PasswordHash, nil
}

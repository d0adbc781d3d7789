// Package validation envuelve go-playground/validator y libphonenumber
// para producir apperr.ValidationError con nombres de campo JSON.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"equine-clinic/internal/domain/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var (
	once     sync.Once
	validate *validator.Validate

	regionMu      sync.RWMutex
	defaultRegion = "VE"
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// SetDefaultRegion define la región usada para validar teléfonos sin prefijo internacional.
func SetDefaultRegion(region string) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return
	}
	regionMu.Lock()
	defaultRegion = region
	regionMu.Unlock()
}

func region() string {
	regionMu.RLock()
	defer regionMu.RUnlock()
	return defaultRegion
}

// Struct valida los tags `validate` de v.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Invalid("input", err.Error())
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperr.InvalidFields(fields)
}

// Var valida un valor suelto contra tag (ej. "omitempty,email").
func Var(field string, v any, tag string) error {
	err := instance().Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Invalid(field, err.Error())
	}
	return apperr.Invalid(field, message(verrs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "gte":
		return "must be >= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid (" + fe.Tag() + ")"
	}
}

// Phone valida un teléfono. Vacío es válido (el campo es opcional).
func Phone(field, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	num, err := libphonenumber.Parse(phone, region())
	if err != nil {
		return apperr.Invalid(field, "invalid phone number")
	}
	if !libphonenumber.IsValidNumber(num) {
		return apperr.Invalid(field, "invalid phone number")
	}
	return nil
}

// Join combina errores de validación en uno solo; ignora nils.
func Join(errs ...error) error {
	var fields []apperr.FieldError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			fields = append(fields, ve.Errors...)
			continue
		}
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return apperr.InvalidFields(fields)
}

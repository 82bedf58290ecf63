package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reHora  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	reFecha = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// HH:MM or HH:MM:SS, 24h
	_ = v.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
		return reHora.MatchString(fl.Field().String())
	})
	// date or datetime starting YYYY-MM-DD
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		return reFecha.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "es obligatorio"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "debe ser un email válido"})
		case "hora":
			out = append(out, FieldError{Field: field, Message: "debe ser una hora HH:MM"})
		case "fecha":
			out = append(out, FieldError{Field: field, Message: "debe ser una fecha YYYY-MM-DD"})
		case "gt", "gte":
			out = append(out, FieldError{Field: field, Message: "debe ser mayor que " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "requiere al menos " + e.Param() + " elementos"})
		default:
			out = append(out, FieldError{Field: field, Message: "validación " + e.Tag() + " fallida"})
		}
	}
	return out
}

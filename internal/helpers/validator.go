package helpers

import (
	"github.com/go-playground/validator/v10"

	"github.com/chanjin5212/myfarm-storefront/internal/flows"
)

// NewValidator returns a validator with the storefront's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return flows.ValidatePassword(fl.Field().String()).IsValid
	})
	return v
}

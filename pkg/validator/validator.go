package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation for use outside gin binding
// (service-level request checks).
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Struct(obj interface{}) error {
	if err := v.validate.Struct(obj); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("field %s failed on %s", e.Field(), e.Tag())
		}
		return err
	}
	return nil
}

func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

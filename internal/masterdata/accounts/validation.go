package accounts

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

var formValidator = validator.New()

func validate(form AccountForm) error {
	if err := formValidator.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// FieldErrors flattens validator output into a field-to-message map.
func FieldErrors(form AccountForm) map[string]string {
	errs := map[string]string{}
	err := formValidator.Struct(form)
	if err == nil {
		return errs
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errs[fe.Field()] = "This field is required"
			case "len", "uppercase":
				errs[fe.Field()] = "Use a 3-letter ISO currency code"
			default:
				errs[fe.Field()] = "Invalid value"
			}
		}
	}
	return errs
}

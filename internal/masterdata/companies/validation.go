package companies

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

var formValidator = validator.New()

func validate(form CompanyForm) error {
	if err := formValidator.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// FieldErrors flattens validator output into a field-to-message map for
// form re-rendering.
func FieldErrors(form CompanyForm) map[string]string {
	errs := map[string]string{}
	err := formValidator.Struct(form)
	if err == nil {
		return errs
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Choose one of the listed values"
	case "min":
		return "Too short"
	case "max":
		return "Too long"
	default:
		return "Invalid value"
	}
}

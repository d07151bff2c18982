package products

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

var formValidator = validator.New()

func validate(form ProductForm) error {
	if err := formValidator.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// FieldErrors flattens validation problems, including decimal parses, into
// a field-to-message map.
func FieldErrors(form ProductForm) map[string]string {
	errs := map[string]string{}
	if err := formValidator.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				switch fe.Tag() {
				case "required":
					errs[fe.Field()] = "This field is required"
				default:
					errs[fe.Field()] = "Invalid value"
				}
			}
		}
	}
	if form.Price != "" {
		if d, err := decimal.NewFromString(form.Price); err != nil || d.IsNegative() {
			errs["Price"] = "Enter a non-negative amount"
		}
	}
	if form.VATRate != "" {
		if d, err := decimal.NewFromString(form.VATRate); err != nil || d.IsNegative() {
			errs["VATRate"] = "Enter a non-negative percentage"
		}
	}
	return errs
}

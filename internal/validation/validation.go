package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return domain.ValidatePhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("vehicle", func(fl validator.FieldLevel) bool {
		return domain.VehicleType(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// Struct validates s against its `validate` tags and returns an apperr.ErrInvalid
// wrapped error naming the first offending field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	return apperr.Invalidf("%s", describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is not a valid %s", field, fe.Tag())
	}
}

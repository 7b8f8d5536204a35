package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag (or the form tag) as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors flattens validator errors into a field → failed tag map.
// Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}
	errsMap := make(map[string]string, len(vErrs))
	for _, fieldErr := range vErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return errsMap
}

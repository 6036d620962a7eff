package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check runs struct validation and flattens failures into a field->message
// map suitable for the validation error response.
func Check(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["body"] = "Invalid request body!"
		return errs
	}
	for _, fe := range fieldErrs {
		errs[strings.ToLower(fe.Field())] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long!", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long!", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters long!", fe.Param())
	case "numeric":
		return "Must contain digits only!"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s!", fe.Param())
	default:
		return "Invalid value!"
	}
}

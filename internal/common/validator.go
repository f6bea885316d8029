package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// Report fields by their json name so error maps match the wire format
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// ValidationMessages translates validator errors into a field -> messages map
// with Laravel-style wording.
func ValidationMessages(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["request"] = []string{"The request payload is invalid."}
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		human := strings.ReplaceAll(field, "_", " ")
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("The %s field is required.", human)
		case "email":
			msg = fmt.Sprintf("The %s must be a valid email address.", human)
		case "numeric":
			msg = fmt.Sprintf("The %s must be a number.", human)
		case "min":
			msg = fmt.Sprintf("The %s must be at least %s characters.", human, fe.Param())
		case "max":
			msg = fmt.Sprintf("The %s may not be greater than %s characters.", human, fe.Param())
		case "uuid":
			msg = fmt.Sprintf("The selected %s is invalid.", human)
		default:
			msg = fmt.Sprintf("The %s field is invalid.", human)
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// FieldError builds a single-field error map in the same shape as
// ValidationMessages, for checks that run outside the struct validator.
func FieldError(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

// Package validators wires go-playground/validator into Echo and turns
// validation failures into the itemized per-field error list the API
// envelope carries.
package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the application's custom rules
func NewValidator() *Validator {
	v := validator.New()

	// Report field names by their json tag so error items match the wire shape
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// objectid validates a MongoDB ObjectID hex string
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldError is one item of a validation failure response
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors extracts per-field errors from a validator error. A non-nil
// result means the error was a validation failure.
func FieldErrors(err error) []FieldError {
	valErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make([]FieldError, 0, len(valErrs))
	for _, e := range valErrs {
		out = append(out, FieldError{
			Field:   e.Field(),
			Message: messageFor(e),
		})
	}
	return out
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "objectid":
		return "must be a valid identifier"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	default:
		return fmt.Sprintf("failed the '%s' rule", e.Tag())
	}
}

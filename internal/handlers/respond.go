package handlers

import (
	"net/http"

	"github.com/graceworks/grace-backend/validators"
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform JSON response shape. Failure responses carry
// either a generic error string or a structured per-field errors array;
// callers distinguish the two by shape.
type Envelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Result  interface{}             `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Errors  []validators.FieldError `json:"errors,omitempty"`
}

func respondSuccess(c echo.Context, status int, message string, result interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Result: result})
}

func respondError(c echo.Context, status int, message, errStr string) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Error: errStr})
}

func respondValidation(c echo.Context, message string, fieldErrors []validators.FieldError) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message, Errors: fieldErrors})
}

// validationOrBadRequest renders a validator failure as an itemized errors
// array, falling back to a generic 400 for non-validator errors.
func validationOrBadRequest(c echo.Context, err error) error {
	if fieldErrs := validators.FieldErrors(err); fieldErrs != nil {
		return respondValidation(c, "Validation failed", fieldErrs)
	}
	return respondError(c, http.StatusBadRequest, "Validation failed", err.Error())
}

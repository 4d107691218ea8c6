package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/changhyeonkim/gym-member-api/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
// Every failing field is listed; the message describes the first one.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return nil, false
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}

	resp := sharedError.ValidationFailed
	resp.Message = getErrorMessage(validationErrors[0])
	resp.Fields = fields
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required.", fe.Field())
	case CalendarDateTag:
		return fmt.Sprintf("'%s' must be a valid date in YYYY-MM-DD format.", fe.Field())
	case "min":
		return fmt.Sprintf("'%s' must be at least %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("'%s' is invalid.", fe.Field())
	}
}

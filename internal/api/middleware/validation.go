package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"docpod/internal/api/errors"
)

// Validator is implemented by requests with rules beyond struct tags
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body into req and validates it
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError("Validation failed", fieldErrors(err, "request", "invalid JSON format"))
	}
	return validateDomain(req)
}

// ValidateQuery binds query parameters into req and validates them
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return errors.NewValidationError("Invalid query parameters", fieldErrors(err, "query", "invalid query parameters"))
	}
	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func fieldErrors(err error, fallbackField, fallbackMsg string) map[string]string {
	details := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		details[fallbackField] = fallbackMsg
		return details
	}

	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email"
		case "min":
			details[field] = "is too short"
		case "max":
			details[field] = "is too long"
		case "oneof":
			details[field] = "must be one of the allowed values"
		default:
			details[field] = "is invalid"
		}
	}
	return details
}

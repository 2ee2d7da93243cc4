package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is returned for failed request validation and mapped to
// 400 by the error handler.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRequest runs struct tag validation on a request body.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return &ValidationError{Message: err.Error()}
		}

		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("field %s failed on %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return &ValidationError{Message: strings.Join(messages, "; ")}
	}
	return nil
}

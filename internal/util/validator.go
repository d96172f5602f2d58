package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func msgForTag(fe validator.FieldError, customField map[string]string) string {
	field := fe.Field()
	if name, ok := customField[field]; ok {
		field = name
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace characters", field)
	}

	return fe.Error()
}

// FirstValidationError extracts the first validator error as a plain message,
// optionally mapping struct field names to the labels the caller knows.
// Usage: FirstValidationError(err, map[string]string{"Name": "Nome completo"})
func FirstValidationError(err error, customField map[string]string) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return msgForTag(ve[0], customField)
	}

	return err.Error()
}

// check if string is empty, after trimming spaces
// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return len(strings.TrimSpace(field.String())) > 0
}

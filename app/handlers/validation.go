package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amalbenali/glowshop/app/services"
	"github.com/go-playground/validator/v10"
)

// validationErrorsToService converts validator tag failures to the service
// ValidationError so every caller sees one error shape.
func validationErrorsToService(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := services.NewValidationError()
	for _, fe := range verrs {
		field := jsonFieldName(fe.Namespace())
		switch fe.Tag() {
		case "required":
			out.Add(field, "required")
		case "email":
			out.Add(field, "must be a valid email address")
		case "min":
			out.Add(field, fmt.Sprintf("must be at least %s", fe.Param()))
		case "max":
			out.Add(field, fmt.Sprintf("must be at most %s", fe.Param()))
		case "oneof":
			out.Add(field, fmt.Sprintf("must be one of: %s", fe.Param()))
		default:
			out.Add(field, fmt.Sprintf("failed %s validation", fe.Tag()))
		}
	}
	return out
}

// jsonFieldName lowercases a validator namespace like
// "createOrderRequest.Items[0].Quantity" into "items[0].quantity".
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = camelToSnake(p)
	}
	return strings.Join(parts, ".")
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Package validation runs struct-tag request rules and reports failures as domain field
// errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("positive", positive)

	return &Validator{validate: v}
}

// positive accepts decimals strictly above zero without going through float64.
func positive(fl validator.FieldLevel) bool {
	switch value := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return value.Sign() > 0
	case *decimal.Decimal:
		return value != nil && value.Sign() > 0
	default:
		return false
	}
}

// Struct validates req and returns one FieldError per violated rule, or nil.
func (v *Validator) Struct(req any) []domain.FieldError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "request", Message: err.Error()}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return fields
}

// Check validates req and wraps any failure into a ValidationFailed error.
func (v *Validator) Check(req any, message string) error {
	if fields := v.Struct(req); len(fields) > 0 {
		return domain.NewValidationError(message, fields)
	}
	return nil
}

// fieldPath drops the root struct name: "CreateRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "positive":
		return "must be greater than 0"
	case "lt":
		if fe.Type() == reflect.TypeOf(time.Time{}) {
			return "must be in the past"
		}
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Package validation checks request payloads with go-playground/validator and
// reports failures as apperr validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

var (
	validate   = newValidator()
	personName = regexp.MustCompile(`^[\p{L}\s]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personName.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})
	return v
}

// Struct validates v's `validate` tags.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperr.Invalid(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "personname":
		return fe.Field() + " may only contain letters and spaces"
	case "strongpassword":
		return fe.Field() + " must contain a lowercase letter, an uppercase letter and a digit"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}

// Clean trims s and puts it in Unicode NFC form so equal-looking names compare
// equal in unique indexes.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Money checks that d is positive, has at most two fraction digits and does
// not exceed limit.
func Money(field string, d decimal.Decimal, limit decimal.Decimal) error {
	if !d.IsPositive() {
		return apperr.Validation(field, field+" must be greater than zero")
	}
	if !d.Equal(d.Truncate(2)) {
		return apperr.Validation(field, field+" must have at most two decimal places")
	}
	if d.GreaterThan(limit) {
		return apperr.Validation(field, fmt.Sprintf("%s must not exceed %s", field, limit.StringFixed(2)))
	}
	return nil
}

// Date parses a deadline given as YYYY-MM-DD (midnight UTC) or RFC 3339.
func Date(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.Validation(field, field+" must be a date in YYYY-MM-DD or RFC 3339 format")
}

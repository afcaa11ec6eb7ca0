// Package validate checks request bodies with struct tags and reports the
// first failing field as a domain validation error.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go field names.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = val.RegisterValidation("yearmonth", layoutValidator("2006-01"))
	_ = val.RegisterValidation("isodate", layoutValidator("2006-01-02"))
	_ = val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = val.RegisterValidation("substatus", func(fl validator.FieldLevel) bool {
		return domain.SubscriptionStatus(fl.Field().String()).Valid()
	})
	return val
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

// Struct validates s and returns a *domain.ErrValidation for the first
// failing field, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.ErrValidation{Message: err.Error()}
	}
	fe := verrs[0]
	return &domain.ErrValidation{Field: fe.Field(), Message: message(fe)}
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "yearmonth":
		return "must be in YYYY-MM format"
	case "isodate":
		return "must be in YYYY-MM-DD format"
	case "substatus":
		return "must be one of Active, Pending, Cancelled"
	default:
		return "is invalid"
	}
}

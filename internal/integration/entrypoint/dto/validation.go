package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
)

// DateLayout is the accepted short form for transaction dates.
const DateLayout = "2006-01-02"

// RegisterValidators adds the custom binding tags used by the request DTOs:
//
//	notblank  string is not empty after trimming spaces
//	month     string is a YYYY-MM calendar month
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return fmt.Errorf("failed to register notblank validator: %w", err)
	}
	if err := v.RegisterValidation("month", validMonth); err != nil {
		return fmt.Errorf("failed to register month validator: %w", err)
	}

	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func validMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse(aggregation.MonthLayout, fl.Field().String())
	return err == nil
}

// BindingErrorMessage turns a binding failure into a message naming the
// offending field. Malformed JSON gets a generic message.
func BindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "notblank":
		return fe.Field() + " cannot be empty"
	case "oneof":
		return fmt.Sprintf("%s must be %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), " or "))
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "month":
		return fe.Field() + " must be in YYYY-MM format"
	default:
		return fe.Field() + " is invalid"
	}
}

// ParseDate accepts either YYYY-MM-DD (midnight, server-local) or RFC 3339.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Money renders a decimal as a bare JSON number without losing precision.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

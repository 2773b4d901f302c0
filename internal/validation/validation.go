package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/finlog/finlog-be/internal/models"
)

// Errors maps a field name to every violation reported for it. A nil map
// means the input passed.
type Errors map[string][]string

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance builds the shared validator with the custom domain rules.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON name so errors line up with payloads.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Phone: optional leading +, optional 1, then 9-15 digits.
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})

		// Amount: positive decimal, at most 2 fractional digits.
		_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			return amountMessage(fl.Field().String()) == ""
		})

		_ = v.RegisterValidation("transaction_type", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case models.TransactionIncome, models.TransactionExpense,
				models.TransactionTransfer, models.TransactionRefund:
				return true
			}
			return false
		})

		validate = v
	})
	return validate
}

// Struct validates v and collects every field violation. All rules run
// before any persistence attempt; callers must not write on a non-nil
// result.
func Struct(v any) Errors {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"non_field_errors": {err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "phone":
		return "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
	case "url":
		return "Enter a valid URL."
	case "min":
		if fe.Field() == "age" {
			return "Age must be at least 1"
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Field() == "age" {
			return "Age cannot be more than 150"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "amount":
		return amountMessage(fmt.Sprintf("%v", fe.Value()))
	case "transaction_type":
		return "transaction_type must be one of: INCOME, EXPENSE, TRANSFER, REFUND"
	default:
		return fmt.Sprintf("Invalid value for %s.", fe.Field())
	}
}

// amountMessage returns the violation for a raw amount literal, or ""
// when the amount is acceptable.
func amountMessage(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "A valid number is required."
	}
	if !d.IsPositive() {
		return "Ensure this value is greater than or equal to 0.01."
	}
	// The literal itself is bounded to 2 fractional digits; "50.000" is
	// rejected even though its value fits.
	if d.Exponent() < -2 {
		return "Ensure that there are no more than 2 decimal places."
	}
	if d.NumDigits() > 10 {
		return "Ensure that there are no more than 10 digits in total."
	}
	return ""
}

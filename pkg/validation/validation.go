// Package validation wraps go-playground/validator with the struct tags used by
// request types, and converts its errors into domain errors.
package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "eyecandy/pkg/domain-errors"
	s "eyecandy/pkg/string"
)

var defaultValidator = newValidator()

// Enumerations accepted by the custom tags. Kept as strings so this package
// does not depend on any domain model package.
var (
	locationTypes     = []string{"country", "state", "city", "zip_code"}
	subscriptionTypes = []string{"free", "monthly", "per_visit", "teaser"}
	blockReasons      = []string{"harassment", "bad_language", "inappropriate_behavior", "spam", "other"}
	entitlementKinds  = []string{"monthly", "per_visit"}
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("location_type", enumValidator(locationTypes))
	_ = v.RegisterValidation("subscription_type", enumValidator(subscriptionTypes))
	_ = v.RegisterValidation("block_reason", enumValidator(blockReasons))
	_ = v.RegisterValidation("entitlement_kind", enumValidator(entitlementKinds))
	return v
}

func enumValidator(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate validates a struct using the default validator and returns a domain error
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// ErrorMessage converts a validator error into a human-readable message
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	fe := validationErrs[0]
	fieldName := fe.Field()
	if fieldName == "" {
		fieldName = fe.StructField()
	}
	field := s.ToSnakeCase(fieldName)

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "location_type":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(locationTypes, " "))
	case "subscription_type":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(subscriptionTypes, " "))
	case "block_reason":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(blockReasons, " "))
	case "entitlement_kind":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(entitlementKinds, " "))
	default:
		if field == "" {
			return "invalid request body"
		}
		return fmt.Sprintf("%s is invalid", field)
	}
}

package httpx

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/platform/crypto"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names so messages read "username can't be blank"
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return crypto.IsPasswordAllowed(fl.Field().String())
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct returns one ErrorDetail per failed field, in field order.
func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []ErrorDetail{{Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()

		var message string
		switch fe.Tag() {
		case "required", "notblank":
			message = field + " can't be blank"
		case "password_policy":
			message = field + " is not strong enough"
		case "max":
			message = field + " must be at most " + fe.Param() + " characters"
		case "min", "gte", "lte":
			message = field + " is out of range"
		default:
			message = field + " is invalid"
		}

		details = append(details, ErrorDetail{Field: field, Tag: fe.Tag(), Message: message})
	}
	return details
}

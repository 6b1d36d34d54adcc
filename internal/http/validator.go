package http

import (
	"errors"
	"reflect"
	"strings"

	"booklend/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(jsonFieldName)
	_ = validate.RegisterValidation("rating", validateRating)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= 1 && rating <= 5
}

// ValidateStruct checks s against its validate tags and reports the first
// failure as an invalid-request error.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "rating":
		return apperror.Invalid("%s must be between 1 and 5", fe.Field())
	default:
		// required and min=1 on arrays both mean a missing parameter.
		return apperror.Invalid("%s is required", fe.Field())
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

// newValidator returns a validator that understands the domain tags
// "pagesize" and "sortfield".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("pagesize", func(fl validator.FieldLevel) bool {
		return domain.IsValidPageSize(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("sortfield", func(fl validator.FieldLevel) bool {
		return domain.SortField(fl.Field().String()).IsValid()
	})
	return v
}

// validateStruct runs v over s and converts failures into an error
// wrapping domain.ErrInvalidInput.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "pagesize":
		return fmt.Sprintf("page size must be one of %v, got %v", domain.PageSizes, fe.Value())
	case "sortfield":
		return fmt.Sprintf("unknown sort field %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", strings.ToLower(fe.Field()), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", strings.ToLower(fe.Field()), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}

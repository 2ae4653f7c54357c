// utils/valid.go
package utils

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
)

// Validator wraps go-playground/validator with the content model rules.
// It satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the custom tags used by the models.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if ref, ok := field.Interface().(models.ImageRef); ok {
			return ref.Ref
		}
		return nil
	}, models.ImageRef{})

	// Registration only fails on empty tags, which cannot happen here.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("contactstatus", func(fl validator.FieldLevel) bool {
		return models.ContactStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		return models.ParseImageRef(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return f == math.Trunc(f)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return true
		}
		return false
	})

	return &Validator{validate: v}
}

// Validate checks every rule on i and reports all violations at once.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal("Validation could not be performed", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return apperror.Validation("Validation failed", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", label, fe.Param())
	case "email":
		return "Please provide a valid email"
	case "category":
		return fmt.Sprintf("%s must be one of: %s", label, joinValues(models.Categories))
	case "contactstatus":
		return fmt.Sprintf("%s must be one of: %s", label, joinValues(models.ContactStatuses))
	case "role":
		return fmt.Sprintf("%s is not a recognized role", label)
	case "imageref":
		return fmt.Sprintf("%s must be a valid URL or upload path", label)
	case "whole":
		return fmt.Sprintf("%s must be a whole number", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// humanize turns a json field name into a label, e.g. "screenSize" -> "Screen size".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

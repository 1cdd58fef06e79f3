package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quoting-service/internal/domain"
)

var (
	// ErrValidation wraps struct tag failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps malformed JSON and type mismatches.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// JSON names, and basic_email and notempty are registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("basic_email", validateBasicEmail)
		_ = validate.RegisterValidation("notempty", validateNotEmpty)
	})

	return validate
}

// Validate runs the struct tags of v.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v, then validates it. The
// error wraps ErrBinding or ErrValidation.
func BindAndValidate(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors flattens validator failures into field path -> message.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldPath(fieldErr.Namespace())] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// fieldPath drops the root struct name from a validator namespace, so
// "CreateQuoteRequest.line_items[0].qty" becomes "line_items[0].qty".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

// IsValidationError reports whether err carries validator failures.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

// {param} is replaced by the tag parameter.
var validationMessages = map[string]string{
	"required":    "this field is required",
	"email":       "must be a valid email address",
	"basic_email": "must be a valid email address",
	"url":         "must be a valid URL",
	"notempty":    "must not be empty",
	"gte":         "must be greater than or equal to {param}",
	"lte":         "must be less than or equal to {param}",
	"gt":          "must be greater than {param}",
	"lt":          "must be less than {param}",
	"oneof":       "must be one of: {param}",
}

func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if tag == "min" || tag == "max" {
		return minMaxMessage(tag, param, fe.Type().Kind())
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// minMaxMessage names the unit: characters for strings, items for slices.
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""

	switch kind { //nolint:exhaustive // other kinds take no unit
	case reflect.String:
		suffix = " characters"
	case reflect.Slice, reflect.Array:
		suffix = " items"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

// validateBasicEmail accepts the same local@domain.tld shape as the domain
// layer, which is looser than the RFC 5322 "email" tag.
func validateBasicEmail(fl validator.FieldLevel) bool {
	return domain.IsBasicEmail(fl.Field().String())
}

func validateNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

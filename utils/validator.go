package utils

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidatorErrorResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		var errs []ValidationError
		for _, fe := range fieldErrors {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessages(fe),
			})
		}

		return echo.NewHTTPError(http.StatusBadRequest, ValidatorErrorResponse{
			Message: "validate failed",
			Errors:  errs,
		})
	}
	return nil
}

// FieldErrors extracts the per-field errors from an error returned by
// Validate. The second result is false for any other error.
func FieldErrors(err error) ([]ValidationError, bool) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return nil, false
	}
	resp, ok := he.Message.(ValidatorErrorResponse)
	if !ok {
		return nil, false
	}
	return resp.Errors, true
}

func getErrorMessages(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "datetime":
		return "Invalid date, expected YYYY-MM-DD"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "Too short"
	case "max":
		return "Too long"
	case "gte":
		return "Value too small"
	case "lte":
		return "Value too large"
	default:
		return "Invalid value"
	}
}

// NewValidator reports field errors under their json names so they line up
// with the form field names.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

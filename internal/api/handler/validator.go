package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as *domain.ValidationError keyed by JSON field path.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return domain.PricePattern.MatchString(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := domain.FieldErrors{}
	for _, fe := range ve {
		fields.Add(fieldPath(fe), fieldError(fe))
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath drops the root struct name: "userRequest.email" becomes "email".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

// fieldError converts a single FieldError into the message shown to API callers.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgNotBlank
	case "email":
		return domain.MsgInvalidEmail
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "oneof":
		return "The value you selected is not a valid choice."
	default:
		return domain.MsgInvalid
	}
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

// withFieldError adds msg for field to err, which is nil or a *domain.ValidationError.
func withFieldError(err error, field, msg string) error {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return domain.NewValidationError(field, msg)
	case errors.As(err, &verr):
		verr.Fields.Add(field, msg)
		return verr
	default:
		return err
	}
}

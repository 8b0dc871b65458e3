package validation

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TimeLayout is how times of day are stored and returned.
const TimeLayout = "15:04:05"

// ShortTimeLayout is the accepted input form without seconds.
const ShortTimeLayout = "15:04"

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so it can be returned from Validate.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			_, err := ParseTimeOfDay(fl.Field().String())
			return err == nil
		})

		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return Validator().Struct(s)
}

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(value string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(ShortTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q", value)
	}
	return t, nil
}

// NormalizeTimeOfDay returns value in TimeLayout, e.g. "09:30" -> "09:30:00".
// Invalid input is returned unchanged.
func NormalizeTimeOfDay(value string) string {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		return value
	}
	return t.Format(TimeLayout)
}

// BindAndValidate binds path params and the JSON body into payload and
// validates it. payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := unescapePathParams(c); err != nil {
		return err
	}

	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	return Check(payload)
}

// unescapePathParams decodes path params when the request carried an
// escaped path. Echo routes on URL.RawPath when it is set, so an identifier
// sent as "team%2Fa" would otherwise reach the binder still encoded.
func unescapePathParams(c echo.Context) error {
	if c.Request().URL.RawPath == "" {
		return nil
	}

	values := c.ParamValues()
	decoded := make([]string, len(values))
	for i, v := range values {
		d, err := url.PathUnescape(v)
		if err != nil {
			return errs.NewBadRequestError("Invalid path parameter", true, nil, nil, nil).WithCause(err)
		}
		decoded[i] = d
	}
	c.SetParamValues(decoded...)
	return nil
}

// Check validates payload and returns a 400 *errs.HTTPError on failure.
func Check(payload Validatable) error {
	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}
	return nil
}

func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		if he.Code == http.StatusUnsupportedMediaType {
			return &errs.HTTPError{
				Code:     errs.StatusCode(he.Code),
				Message:  message,
				Status:   he.Code,
				Override: true,
			}
		}
		return errs.NewBadRequestError(message, true, nil, nil, nil).WithCause(err)
	}
	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil).WithCause(err)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return summarize(fieldErrors), fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), []errs.FieldError{}
	}

	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required", "notblank":
			msg = "is required"
		case "min":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())
		case "timeofday":
			msg = "must be a time of day (HH:MM or HH:MM:SS)"
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: msg,
		})
	}

	return summarize(fieldErrors), fieldErrors
}

// summarize renders "Validation failed: name is required" from the first error.
func summarize(fieldErrors []errs.FieldError) string {
	if len(fieldErrors) == 0 {
		return "Validation failed"
	}
	first := fieldErrors[0]
	return fmt.Sprintf("Validation failed: %s %s", first.Field, first.Error)
}

package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"wildtrack-backend/internal/failure"
	"wildtrack-backend/internal/schedule"
)

// EmailPattern is the conservative local@domain.tld shape accepted for contact addresses.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Validator struct {
	v *validator.Validate

	mu   sync.RWMutex
	sets map[string][]string
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return EmailPattern.MatchString(strings.TrimSpace(value))
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := schedule.ParseDay(value, nil)
		return err == nil
	})

	return &Validator{v: v, sets: make(map[string][]string)}
}

// RegisterSet adds a tag that accepts exactly the given values. Values may
// contain spaces, which the built-in oneof tag cannot express.
func (v *Validator) RegisterSet(tag string, values ...string) {
	allowed := make(map[string]struct{}, len(values))
	for _, value := range values {
		allowed[value] = struct{}{}
	}

	v.mu.Lock()
	v.sets[tag] = append([]string(nil), values...)
	v.mu.Unlock()

	err := v.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, ok = allowed[value]
		return ok
	})
	if err != nil {
		panic(err)
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Check validates s and returns one entry per failing field.
func (v *Validator) Check(s interface{}) []failure.FieldError {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	errs := v.ValidationErrors(err)
	if errs == nil {
		return []failure.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]failure.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, failure.FieldError{
			Field:   fe.Field(),
			Message: v.message(fe),
		})
	}
	return out
}

func (v *Validator) message(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	numeric := isNumeric(fe.Kind())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "emailaddr", "email":
		return "Please provide a valid email address"
	case "isodate":
		return field + " must be a valid date (YYYY-MM-DD)"
	case "max", "lte":
		if numeric {
			return field + " must be at most " + param
		}
		return field + " cannot exceed " + param + " characters"
	case "min", "gte":
		if numeric {
			return field + " must be at least " + param
		}
		return field + " must be at least " + param + " characters"
	case "gt":
		return field + " must be greater than " + param
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	}

	v.mu.RLock()
	values, ok := v.sets[fe.Tag()]
	v.mu.RUnlock()
	if ok {
		return field + " must be one of: " + strings.Join(values, ", ")
	}
	return field + " is invalid"
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Package validate checks form input locally, before any request is sent.
//
// Rules are validator/v10 struct tags on the service form types. Two custom
// tags are registered: notblank (non-empty after trimming) and emailshape
// (something@something.something with no whitespace). A field's `label` tag
// names it in messages and a `message` tag replaces the message for any
// failure on that field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Error is a local validation failure. Message is ready to show to the user.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
			return emailShape.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates a form and returns the first failure in field order.
func Struct(form any) error {
	return check(form, get().Struct(form), false)
}

// Fields validates only the named struct fields of form. Edits that leave
// a field untouched use it to skip that field's rules.
func Fields(form any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return check(form, get().StructPartial(form, fields...), false)
}

// StructBlankFirst is like Struct but reports any blank field before other
// failures (the register form asks for every field before checking formats).
func StructBlankFirst(form any) error {
	return check(form, get().Struct(form), true)
}

func check(form any, err error, blankFirst bool) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	pick := fieldErrs[0]
	if blankFirst {
		for _, fe := range fieldErrs {
			if fe.Tag() == "notblank" {
				pick = fe
				break
			}
		}
	}
	return &Error{Field: pick.Field(), Message: message(form, pick)}
}

func message(form any, fe validator.FieldError) string {
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if m := sf.Tag.Get("message"); m != "" {
			return m
		}
	}

	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "emailshape", "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

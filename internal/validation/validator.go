// Package validation wraps go-playground/validator with the tags the diary
// domain needs and maps failures onto common.ErrorValidation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterInput is the caller-supplied part of a new account.
type RegisterInput struct {
	Username string `validate:"notblank,max=255"`
	Password string `validate:"notblank,maxbytes=72"`
	Email    string `validate:"required,email,max=255"`
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared, fully configured validator.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return lowerFirst(fld.Name)
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
			return models.Mood(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("maxbytes", maxBytes)
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := models.ParseRole(fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// maxBytes bounds the encoded length of a string. max counts runes, which is
// not what bcrypt limits.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

// Struct validates s. Failures wrap common.ErrorValidation and list every
// offending field in the message.
func Struct(s any) error {
	if s == nil || (reflect.ValueOf(s).Kind() == reflect.Pointer && reflect.ValueOf(s).IsNil()) {
		return fmt.Errorf("%w: value is required", common.ErrorValidation)
	}

	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	details := ToDetails(err)
	if len(details) == 0 {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+details[f])
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(parts, "; "))
}

// ToDetails converts validator errors into a field → message map.
func ToDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = formatFieldError(fe)
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "mood":
		return "must be one of " + moodNames()
	case "role":
		return "must be USER or ADMIN"
	}
	return "is invalid (" + fe.Tag() + ")"
}

func moodNames() string {
	names := make([]string, 0, len(models.Moods))
	for _, m := range models.Moods {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

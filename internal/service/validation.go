package service

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^(\+\d{1,3})?\s*(\(\d{1,3}\)|\d{1,3})\s*(\d{3})\s*(\d{2})\s*(\d{2})$`)
)

// Validator checks DTOs. Full payloads (create, update) follow the validate
// tags; partial payloads follow the patch tags, which only bound the values
// a merge may write and never require a field.
type Validator struct {
	full  *validator.Validate
	patch *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		full:  newValidate("validate"),
		patch: newValidate("patch"),
	}
}

func (v *Validator) Struct(d any) error {
	return v.full.Struct(d)
}

func (v *Validator) Patch(d any) error {
	return v.patch.Struct(d)
}

func newValidate(tag string) *validator.Validate {
	v := validator.New()
	v.SetTagName(tag)

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "email_pattern", patternRule(emailPattern))
	mustRegister(v, "phone_number", patternRule(phonePattern))
	return v
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("service: register " + tag + ": " + err.Error())
	}
}

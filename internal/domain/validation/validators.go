package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Indian mobile numbers: ten digits, leading 6-9.
var mobileRegex = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// RegisterValidators registers the form's custom tags on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("nonblank", NonBlank)
	_ = v.RegisterValidation("mobile", Mobile)
}

// NonBlank rejects strings that are empty after trimming whitespace.
func NonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Mobile validates a ten digit mobile number.
func Mobile(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

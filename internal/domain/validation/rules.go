package validation

import (
	"strings"

	"github.com/okian/intake/internal/domain/model"
)

// Password character classes. Only ASCII letters and digits count, and the
// special set is fixed.
const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "@_$#&*"

	passwordMinLength = "8"
)

// GenderOptions are the accepted values of the gender field.
var GenderOptions = []string{"male", "female"}

// DefaultRules returns the profile form's rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field:  model.FieldName,
			Checks: []Check{{Tag: "nonblank", Message: "Name is required"}},
		},
		{
			Field: model.FieldEmail,
			Checks: []Check{
				{Tag: "required", Message: "Email is required"},
				{Tag: "email", Message: "Invalid email"},
			},
		},
		{
			Field: model.FieldMobile,
			Checks: []Check{
				{Tag: "required", Message: "Mobile number is required"},
				{Tag: "mobile", Message: "Enter valid 10-digit number"},
			},
		},
		{
			Field: model.FieldPassword,
			Checks: []Check{
				{Tag: "required", Message: "Password is required"},
				{Tag: "min=" + passwordMinLength, Message: "Min 8 characters"},
				{Tag: "containsany=" + upperChars, Message: "At least one uppercase"},
				{Tag: "containsany=" + lowerChars, Message: "At least one lowercase"},
				{Tag: "containsany=" + digitChars, Message: "At least one number"},
				{Tag: "containsany=" + specialChars, Message: "At least one special character"},
			},
		},
		{
			Field: model.FieldConfirmPassword,
			Checks: []Check{
				{Tag: "required", Message: "Confirm your password"},
				{Tag: "eqcsfield", Message: "Passwords must match", Against: model.FieldPassword},
			},
			DependsOn: []model.FieldID{model.FieldPassword},
		},
		{
			Field: model.FieldGender,
			Checks: []Check{
				{Tag: "required", Message: "Gender is required"},
				{Tag: "oneof=" + strings.Join(GenderOptions, " "), Message: "Gender must be male or female"},
			},
		},
		{
			Field:  model.FieldLocation,
			Checks: []Check{{Tag: "nonblank", Message: "Location is required"}},
		},
		{
			Field:  model.FieldEducation,
			Checks: []Check{{Tag: "nonblank", Message: "Education is required"}},
		},
		{
			Field: model.FieldSkills,
			Checks: []Check{
				{Tag: "min=1", Message: "Please enter at least one skill"},
				{Tag: "dive,nonblank", Message: "Skill cannot be empty"},
			},
		},
		{
			Field:     model.FieldExperienceDetails,
			Checks:    []Check{{Tag: "nonblank", Message: "Experience details required"}},
			DependsOn: []model.FieldID{model.FieldHasExperience},
			When:      func(c Candidate) bool { return c.Values.HasExperience },
		},
	}
}

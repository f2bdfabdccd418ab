package model

import (
	"fmt"
	"strconv"
)

// Values holds the scalar form fields. The zero value is the initial, empty form.
type Values struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Mobile            string `json:"mobile"`
	Password          string `json:"password"`
	ConfirmPassword   string `json:"confirmPassword"`
	Gender            string `json:"gender"`
	Location          string `json:"location"`
	Education         string `json:"education"`
	ExperienceDetails string `json:"experienceDetails"`
	HasExperience     bool   `json:"hasExperience"`
}

// Get returns the raw value of a scalar field. Booleans are rendered with
// strconv.FormatBool. The skills field is not a scalar and reports false.
func (v Values) Get(id FieldID) (string, bool) {
	switch id {
	case FieldName:
		return v.Name, true
	case FieldEmail:
		return v.Email, true
	case FieldMobile:
		return v.Mobile, true
	case FieldPassword:
		return v.Password, true
	case FieldConfirmPassword:
		return v.ConfirmPassword, true
	case FieldGender:
		return v.Gender, true
	case FieldLocation:
		return v.Location, true
	case FieldEducation:
		return v.Education, true
	case FieldExperienceDetails:
		return v.ExperienceDetails, true
	case FieldHasExperience:
		return strconv.FormatBool(v.HasExperience), true
	default:
		return "", false
	}
}

// With returns a copy of v with field id set to raw.
func (v Values) With(id FieldID, raw string) (Values, error) {
	switch id {
	case FieldName:
		v.Name = raw
	case FieldEmail:
		v.Email = raw
	case FieldMobile:
		v.Mobile = raw
	case FieldPassword:
		v.Password = raw
	case FieldConfirmPassword:
		v.ConfirmPassword = raw
	case FieldGender:
		v.Gender = raw
	case FieldLocation:
		v.Location = raw
	case FieldEducation:
		v.Education = raw
	case FieldExperienceDetails:
		v.ExperienceDetails = raw
	case FieldHasExperience:
		flag, err := strconv.ParseBool(raw)
		if err != nil {
			return v, fmt.Errorf("%w: %s=%q", ErrInvalidValue, id, raw)
		}
		v.HasExperience = flag
	default:
		return v, fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	return v, nil
}

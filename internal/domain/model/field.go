// Package model contains domain models passed between layers.
package model

// FieldID names a form field. The string values are the stable contract names
// shared with the rendering layer.
type FieldID string

// Form field identifiers.
const (
	FieldName              FieldID = "name"
	FieldEmail             FieldID = "email"
	FieldMobile            FieldID = "mobile"
	FieldPassword          FieldID = "password"
	FieldConfirmPassword   FieldID = "confirmPassword"
	FieldGender            FieldID = "gender"
	FieldLocation          FieldID = "location"
	FieldEducation         FieldID = "education"
	FieldSkills            FieldID = "skills"
	FieldExperienceDetails FieldID = "experienceDetails"
	FieldHasExperience     FieldID = "hasExperience"
)

// NoFileLabel is recorded in a snapshot when no file was selected.
const NoFileLabel = "No file uploaded"

// ValidatedFields lists the fields that carry validation rules, in display order.
var ValidatedFields = []FieldID{
	FieldName,
	FieldEmail,
	FieldMobile,
	FieldPassword,
	FieldConfirmPassword,
	FieldGender,
	FieldLocation,
	FieldEducation,
	FieldSkills,
	FieldExperienceDetails,
}

// AllFields lists every field identifier known to the form.
var AllFields = append(append([]FieldID{}, ValidatedFields...), FieldHasExperience)

// Known reports whether id is one of the form's field identifiers.
func (id FieldID) Known() bool {
	for _, f := range AllFields {
		if f == id {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (id FieldID) String() string { return string(id) }

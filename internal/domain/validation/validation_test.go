package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/validation"
)

func validCandidate() validation.Candidate {
	return validation.Candidate{
		Values: model.Values{
			Name:            "Asha",
			Email:           "asha@example.com",
			Mobile:          "9876543210",
			Password:        "Abc@1234",
			ConfirmPassword: "Abc@1234",
			Gender:          "female",
			Location:        "Pune",
			Education:       "B.Tech",
		},
		Skills: []string{"Go"},
	}
}

func TestEngineValidate(t *testing.T) {
	Convey("Given the default engine", t, func() {
		e := validation.New()

		Convey("A fully populated candidate should be valid", func() {
			res := e.Validate(validCandidate())
			So(res.Valid(), ShouldBeTrue)
			So(res, ShouldBeEmpty)
		})

		Convey("An empty candidate should fail every required field", func() {
			res := e.Validate(validation.Candidate{})
			So(res.Valid(), ShouldBeFalse)
			So(res[model.FieldName], ShouldEqual, "Name is required")
			So(res[model.FieldEmail], ShouldEqual, "Email is required")
			So(res[model.FieldMobile], ShouldEqual, "Mobile number is required")
			So(res[model.FieldPassword], ShouldEqual, "Password is required")
			So(res[model.FieldConfirmPassword], ShouldEqual, "Confirm your password")
			So(res[model.FieldGender], ShouldEqual, "Gender is required")
			So(res[model.FieldLocation], ShouldEqual, "Location is required")
			So(res[model.FieldEducation], ShouldEqual, "Education is required")
			So(res[model.FieldSkills], ShouldEqual, "Please enter at least one skill")
			So(res, ShouldNotContainKey, model.FieldExperienceDetails)
		})

		Convey("Whitespace-only text should not satisfy nonblank fields", func() {
			c := validCandidate()
			c.Values.Name = "   "
			c.Values.Location = "\t"
			res := e.Validate(c)
			So(res[model.FieldName], ShouldEqual, "Name is required")
			So(res[model.FieldLocation], ShouldEqual, "Location is required")
		})

		Convey("A malformed email should report an invalid email", func() {
			c := validCandidate()
			c.Values.Email = "asha@"
			So(e.Field(c, model.FieldEmail), ShouldEqual, "Invalid email")
		})

		Convey("Mobile numbers must be ten digits starting with 6-9", func() {
			c := validCandidate()
			for _, bad := range []string{"12345", "5876543210", "98765432101", "98765abcde"} {
				c.Values.Mobile = bad
				So(e.Field(c, model.FieldMobile), ShouldEqual, "Enter valid 10-digit number")
			}
			for _, good := range []string{"6000000000", "9876543210"} {
				c.Values.Mobile = good
				So(e.Field(c, model.FieldMobile), ShouldBeEmpty)
			}
		})

		Convey("Password checks should report the first failing rule", func() {
			c := validCandidate()
			cases := map[string]string{
				"Ab@1":      "Min 8 characters",
				"abcdef@1":  "At least one uppercase",
				"ABCDEF@1":  "At least one lowercase",
				"Abcdefg@":  "At least one number",
				"Abcdefg1":  "At least one special character",
				"Abcdef1!":  "At least one special character",
				"Abc#12345": "",
			}
			for pw, want := range cases {
				c.Values.Password = pw
				So(e.Field(c, model.FieldPassword), ShouldEqual, want)
			}
		})

		Convey("Confirm password must equal the password", func() {
			c := validCandidate()
			c.Values.ConfirmPassword = "Abc@12345"
			So(e.Field(c, model.FieldConfirmPassword), ShouldEqual, "Passwords must match")

			c.Values.ConfirmPassword = ""
			So(e.Field(c, model.FieldConfirmPassword), ShouldEqual, "Confirm your password")
		})

		Convey("Gender must be one of the offered options", func() {
			c := validCandidate()
			c.Values.Gender = "other"
			So(e.Field(c, model.FieldGender), ShouldEqual, "Gender must be male or female")
			c.Values.Gender = "male"
			So(e.Field(c, model.FieldGender), ShouldBeEmpty)
		})

		Convey("Skills must contain at least one non-blank entry", func() {
			c := validCandidate()
			c.Skills = nil
			So(e.Field(c, model.FieldSkills), ShouldEqual, "Please enter at least one skill")
			c.Skills = []string{"Go", " "}
			So(e.Field(c, model.FieldSkills), ShouldEqual, "Skill cannot be empty")
		})

		Convey("Experience details are only required when experience is declared", func() {
			c := validCandidate()
			So(e.Field(c, model.FieldExperienceDetails), ShouldBeEmpty)

			c.Values.HasExperience = true
			So(e.Field(c, model.FieldExperienceDetails), ShouldEqual, "Experience details required")

			c.Values.ExperienceDetails = "3 years at Acme"
			So(e.Field(c, model.FieldExperienceDetails), ShouldBeEmpty)
		})

		Convey("Fields without a rule are always valid", func() {
			So(e.Field(validation.Candidate{}, model.FieldHasExperience), ShouldBeEmpty)
			So(e.Field(validation.Candidate{}, model.FieldID("nope")), ShouldBeEmpty)
		})
	})
}

func TestEngineDependencies(t *testing.T) {
	Convey("Given the default engine", t, func() {
		e := validation.New()

		Convey("The dependency table should be explicit", func() {
			So(e.Dependents(model.FieldPassword), ShouldResemble, []model.FieldID{model.FieldConfirmPassword})
			So(e.Dependents(model.FieldHasExperience), ShouldResemble, []model.FieldID{model.FieldExperienceDetails})
			So(e.Dependents(model.FieldName), ShouldBeEmpty)
		})

		Convey("Affected should list the field followed by its dependents", func() {
			So(e.Affected(model.FieldPassword), ShouldResemble,
				[]model.FieldID{model.FieldPassword, model.FieldConfirmPassword})
			So(e.Affected(model.FieldHasExperience), ShouldResemble,
				[]model.FieldID{model.FieldExperienceDetails})
			So(e.Affected(model.FieldEmail), ShouldResemble, []model.FieldID{model.FieldEmail})
		})

		Convey("Changing the password should refresh the confirmation error", func() {
			c := validCandidate()
			prev := e.Validate(c)
			So(prev.Valid(), ShouldBeTrue)

			c.Values.Password = "Xyz@98765"
			next, affected := e.Revalidate(c, prev, model.FieldPassword)

			So(affected, ShouldResemble, []model.FieldID{model.FieldPassword, model.FieldConfirmPassword})
			So(next[model.FieldConfirmPassword], ShouldEqual, "Passwords must match")
			So(prev, ShouldBeEmpty)
		})

		Convey("Toggling experience off should clear the details error", func() {
			c := validCandidate()
			c.Values.HasExperience = true
			prev := e.Validate(c)
			So(prev[model.FieldExperienceDetails], ShouldEqual, "Experience details required")

			c.Values.HasExperience = false
			next, _ := e.Revalidate(c, prev, model.FieldHasExperience)
			So(next, ShouldNotContainKey, model.FieldExperienceDetails)
		})

		Convey("Incremental re-validation should always equal a full validation", func() {
			type change struct {
				field model.FieldID
				raw   string
			}
			steps := []change{
				{model.FieldName, "Asha"},
				{model.FieldPassword, "abc"},
				{model.FieldConfirmPassword, "abc"},
				{model.FieldPassword, "Abc@1234"},
				{model.FieldHasExperience, "true"},
				{model.FieldExperienceDetails, "  "},
				{model.FieldConfirmPassword, "Abc@1234"},
				{model.FieldExperienceDetails, "Intern"},
				{model.FieldHasExperience, "false"},
				{model.FieldMobile, "12345"},
				{model.FieldPassword, ""},
			}

			var c validation.Candidate
			res := e.Validate(c)
			for _, st := range steps {
				v, err := c.Values.With(st.field, st.raw)
				So(err, ShouldBeNil)
				c.Values = v

				res, _ = e.Revalidate(c, res, st.field)
				So(res, ShouldResemble, e.Validate(c))
			}

			c.Skills = []string{"Go"}
			res, _ = e.Revalidate(c, res, model.FieldSkills)
			So(res, ShouldResemble, e.Validate(c))
		})
	})
}

func TestEngineOptions(t *testing.T) {
	Convey("Given a shared validator instance", t, func() {
		v := validator.New()
		e := validation.New(validation.WithValidator(v))

		Convey("The custom tags should be registered on it", func() {
			So(v.Var("   ", "nonblank"), ShouldNotBeNil)
			So(v.Var("9876543210", "mobile"), ShouldBeNil)
			So(e.Field(validation.Candidate{}, model.FieldName), ShouldEqual, "Name is required")
		})
	})

	Convey("Given a custom rule set", t, func() {
		e := validation.New(validation.WithRules(validation.Rule{
			Field:  model.FieldLocation,
			Checks: []validation.Check{{Tag: "oneof=Pune Delhi", Message: "Unsupported city"}},
		}))

		Convey("Only the supplied rules should be evaluated", func() {
			So(e.Fields(), ShouldResemble, []model.FieldID{model.FieldLocation})
			res := e.Validate(validation.Candidate{Values: model.Values{Location: "Goa"}})
			So(res, ShouldResemble, validation.Result{model.FieldLocation: "Unsupported city"})
		})
	})
}

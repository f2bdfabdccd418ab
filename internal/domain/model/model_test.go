package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/intake/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestValues(t *testing.T) {
	convey.Convey("Given empty form values", t, func() {
		var v model.Values

		convey.Convey("When setting every scalar field", func() {
			var err error
			for _, id := range model.ValidatedFields {
				if id == model.FieldSkills {
					continue
				}
				v, err = v.With(id, "x-"+string(id))
				convey.So(err, convey.ShouldBeNil)
			}

			convey.Convey("Then Get returns what was set", func() {
				for _, id := range model.ValidatedFields {
					got, ok := v.Get(id)
					if id == model.FieldSkills {
						convey.So(ok, convey.ShouldBeFalse)
						continue
					}
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(got, convey.ShouldEqual, "x-"+string(id))
				}
			})
		})

		convey.Convey("When setting hasExperience", func() {
			next, err := v.With(model.FieldHasExperience, "true")

			convey.Convey("Then the flag is parsed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(next.HasExperience, convey.ShouldBeTrue)
				raw, ok := next.Get(model.FieldHasExperience)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(raw, convey.ShouldEqual, "true")
			})

			convey.Convey("And the original copy is untouched", func() {
				convey.So(v.HasExperience, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When hasExperience is not a boolean", func() {
			_, err := v.With(model.FieldHasExperience, "maybe")

			convey.Convey("Then ErrInvalidValue is returned", func() {
				convey.So(errors.Is(err, model.ErrInvalidValue), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the field is unknown", func() {
			_, err := v.With(model.FieldID("age"), "30")

			convey.Convey("Then ErrUnknownField is returned", func() {
				convey.So(errors.Is(err, model.ErrUnknownField), convey.ShouldBeTrue)
				convey.So(model.FieldID("age").Known(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestSnapshotClone(t *testing.T) {
	convey.Convey("Given a snapshot with skills", t, func() {
		s := model.Snapshot{
			ID:     "a",
			Values: model.Values{Name: "Asha"},
			Skills: []string{"Go", "SQL"},
			File:   model.NoFileLabel,
		}

		convey.Convey("When the clone's skills are mutated", func() {
			c := s.Clone()
			c.Skills[0] = "Rust"
			c.Skills = append(c.Skills, "K8s")

			convey.Convey("Then the original is unchanged", func() {
				convey.So(s.Skills, convey.ShouldResemble, []string{"Go", "SQL"})
				convey.So(c.Values, convey.ShouldResemble, s.Values)
			})
		})
	})
}

func TestFieldIDs(t *testing.T) {
	convey.Convey("Given the field catalogue", t, func() {
		convey.Convey("Then every stable contract name is known", func() {
			names := []string{"name", "email", "mobile", "password", "confirmPassword", "gender",
				"location", "education", "skills", "experienceDetails", "hasExperience"}
			for _, n := range names {
				convey.So(model.FieldID(n).Known(), convey.ShouldBeTrue)
			}
			convey.So(len(model.AllFields), convey.ShouldEqual, len(names))
		})
	})
}

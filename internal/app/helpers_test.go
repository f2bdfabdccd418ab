package service_test

import (
	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/validation"
)

// alwaysValidEngine only checks that gender, when set, is a known option.
func alwaysValidEngine() *validation.Engine {
	return validation.New(validation.WithRules(validation.Rule{
		Field:  model.FieldGender,
		Checks: []validation.Check{{Tag: "omitempty,oneof=male female", Message: "Gender must be male or female"}},
	}))
}

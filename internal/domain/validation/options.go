package validation

import "github.com/go-playground/validator/v10"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithValidator shares an existing validator instance. The form's custom tags
// are registered on it.
func WithValidator(v *validator.Validate) Option {
	return func(e *Engine) {
		if v != nil {
			e.validate = v
		}
	}
}

// WithRules replaces the default rule set. Rules are evaluated in the order
// given.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		for _, r := range rules {
			e.addRule(r)
		}
	}
}

// Package validation evaluates the profile form's field rules.
//
// Each field has an ordered list of checks; the first failing check yields the
// field's single error message. Cross-field rules declare the fields they read
// through Rule.DependsOn, which the Engine turns into an explicit re-validation
// trigger table.
package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/okian/intake/internal/domain/model"
)

// Candidate is the full set of values a rule can read.
type Candidate struct {
	Values model.Values
	Skills []string
}

func (c Candidate) value(id model.FieldID) any {
	if id == model.FieldSkills {
		if c.Skills == nil {
			return []string{}
		}
		return c.Skills
	}
	v, _ := c.Values.Get(id)
	return v
}

// Result maps a field to its current error message. A missing or empty entry
// means the field is valid.
type Result map[model.FieldID]string

// Valid reports whether no field carries an error.
func (r Result) Valid() bool {
	for _, msg := range r {
		if msg != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of r.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Check is one validator tag with the message reported when it fails.
// When Against is set the tag is evaluated with that field's value as the
// comparison target (eqcsfield and friends).
type Check struct {
	Tag     string
	Message string
	Against model.FieldID
}

// Rule declares the checks for a single field.
type Rule struct {
	Field     model.FieldID
	Checks    []Check
	DependsOn []model.FieldID

	// When gates the whole rule; a nil When always applies. A rule that does
	// not apply leaves the field valid regardless of its content.
	When func(Candidate) bool
}

// Engine evaluates rules against candidates.
type Engine struct {
	validate   *validator.Validate
	rules      map[model.FieldID]Rule
	order      []model.FieldID
	dependents map[model.FieldID][]model.FieldID
}

// New builds an Engine with the form's default rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:      make(map[model.FieldID]Rule),
		dependents: make(map[model.FieldID][]model.FieldID),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.validate == nil {
		e.validate = validator.New()
	}
	RegisterValidators(e.validate)

	if len(e.order) == 0 {
		for _, r := range DefaultRules() {
			e.addRule(r)
		}
	}
	return e
}

func (e *Engine) addRule(r Rule) {
	if _, exists := e.rules[r.Field]; !exists {
		e.order = append(e.order, r.Field)
	}
	e.rules[r.Field] = r
	for _, dep := range r.DependsOn {
		e.dependents[dep] = appendUnique(e.dependents[dep], r.Field)
	}
}

// Fields returns the validated fields in declaration order.
func (e *Engine) Fields() []model.FieldID {
	return append([]model.FieldID(nil), e.order...)
}

// Dependents returns the fields that must be re-validated when id changes.
func (e *Engine) Dependents(id model.FieldID) []model.FieldID {
	return append([]model.FieldID(nil), e.dependents[id]...)
}

// Affected returns id itself (when it has a rule) followed by its dependents.
func (e *Engine) Affected(id model.FieldID) []model.FieldID {
	var out []model.FieldID
	if _, ok := e.rules[id]; ok {
		out = append(out, id)
	}
	for _, dep := range e.dependents[id] {
		out = appendUnique(out, dep)
	}
	return out
}

// Field evaluates a single field and returns its error message, or "" when
// the field is valid or has no rule.
func (e *Engine) Field(c Candidate, id model.FieldID) string {
	r, ok := e.rules[id]
	if !ok {
		return ""
	}
	if r.When != nil && !r.When(c) {
		return ""
	}
	val := c.value(id)
	for _, chk := range r.Checks {
		var err error
		if chk.Against != "" {
			err = e.validate.VarWithValue(val, c.value(chk.Against), chk.Tag)
		} else {
			err = e.validate.Var(val, chk.Tag)
		}
		if err != nil {
			return chk.Message
		}
	}
	return ""
}

// Validate evaluates every rule.
func (e *Engine) Validate(c Candidate) Result {
	res := make(Result, len(e.order))
	for _, id := range e.order {
		if msg := e.Field(c, id); msg != "" {
			res[id] = msg
		}
	}
	return res
}

// Revalidate recomputes the fields affected by a change to id and returns the
// updated result along with the fields that were re-evaluated. prev is not
// modified.
func (e *Engine) Revalidate(c Candidate, prev Result, id model.FieldID) (Result, []model.FieldID) {
	next := prev.Clone()
	affected := e.Affected(id)
	for _, f := range affected {
		if msg := e.Field(c, f); msg != "" {
			next[f] = msg
		} else {
			delete(next, f)
		}
	}
	return next, affected
}

func appendUnique(list []model.FieldID, id model.FieldID) []model.FieldID {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

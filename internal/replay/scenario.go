// Package replay drives a running form API through YAML scenarios and reports
// where the server disagrees with the recorded expectations.
package replay

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Action names accepted in scenario steps.
const (
	ActionSet         = "set"
	ActionTouch       = "touch"
	ActionExperience  = "experience"
	ActionSkillInput  = "skill_input"
	ActionSkill       = "skill"
	ActionRemoveSkill = "remove_skill"
	ActionFile        = "file"
	ActionClearFile   = "clear_file"
	ActionSubmit      = "submit"
	ActionView        = "view"
)

// Scenario is an ordered list of form inputs with expectations.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one input. Field is used by set and touch; Value carries the text
// for set, skill, remove_skill and file; Flag is the experience toggle.
type Step struct {
	Action string       `yaml:"action"`
	Field  string       `yaml:"field,omitempty"`
	Value  string       `yaml:"value,omitempty"`
	Flag   bool         `yaml:"flag,omitempty"`
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation lists what must hold after a step. Nil members are not checked.
type Expectation struct {
	Ready           *bool             `yaml:"ready,omitempty"`
	Accepted        *bool             `yaml:"accepted,omitempty"`
	VisibleErrors   map[string]string `yaml:"visible_errors,omitempty"`
	NoVisibleErrors bool              `yaml:"no_visible_errors,omitempty"`
	Skills          []string          `yaml:"skills,omitempty"`
	SkillInput      *string           `yaml:"skill_input,omitempty"`
	File            *string           `yaml:"file,omitempty"`
	Submissions     *int              `yaml:"submissions,omitempty"`
}

// Parse decodes one scenario, rejecting unknown keys.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads a scenario from path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case ActionSet, ActionTouch:
			if st.Field == "" {
				return fmt.Errorf("%w: step %d: %s needs a field", ErrInvalidScenario, i+1, st.Action)
			}
		case ActionExperience, ActionSkillInput, ActionSkill, ActionRemoveSkill,
			ActionFile, ActionClearFile, ActionSubmit, ActionView:
		default:
			return fmt.Errorf("%w: step %d: %w %q", ErrInvalidScenario, i+1, ErrUnknownAction, st.Action)
		}
	}
	return nil
}

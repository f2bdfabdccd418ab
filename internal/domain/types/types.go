// Package types contains the shapes shared between the form session and the
// rendering layer.
package types

import "github.com/okian/intake/internal/domain/model"

// FormView is everything the rendering layer needs to draw the form.
type FormView struct {
	Values model.Values `json:"values"`

	// Errors holds every current validation message. VisibleErrors is the
	// subset for touched fields, which is what the form displays.
	Errors        map[model.FieldID]string `json:"errors"`
	VisibleErrors map[model.FieldID]string `json:"visible_errors"`
	Touched       []model.FieldID          `json:"touched"`

	Skills     []string `json:"skills"`
	SkillInput string   `json:"skill_input"`

	File         string `json:"file"`
	FileSelected bool   `json:"file_selected"`

	Ready       bool `json:"ready"`
	Submissions int  `json:"submissions"`
}

// ErrorFor returns the displayed message for id, or "".
func (v FormView) ErrorFor(id model.FieldID) string {
	return v.VisibleErrors[id]
}

// Outcome is the result of handling one input event.
type Outcome struct {
	Form FormView `json:"form"`

	// Accepted and Submission are only set by submit events.
	Accepted   bool            `json:"accepted"`
	Submission *model.Snapshot `json:"submission,omitempty"`
}

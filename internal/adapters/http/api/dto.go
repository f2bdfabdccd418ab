package api

import (
	"time"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/types"
)

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type touchedRequest struct {
	Field string `json:"field"`
}

type experienceRequest struct {
	HasExperience *bool `json:"has_experience"`
}

type skillRequest struct {
	Text string `json:"text"`
}

type fileRequest struct {
	Name string `json:"name"`
}

// valuesDTO is model.Values without the password fields.
type valuesDTO struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Mobile            string `json:"mobile"`
	Gender            string `json:"gender"`
	Location          string `json:"location"`
	Education         string `json:"education"`
	ExperienceDetails string `json:"experienceDetails"`
	HasExperience     bool   `json:"hasExperience"`
	PasswordSet       bool   `json:"password_set"`
}

func newValuesDTO(v model.Values) valuesDTO {
	return valuesDTO{
		Name:              v.Name,
		Email:             v.Email,
		Mobile:            v.Mobile,
		Gender:            v.Gender,
		Location:          v.Location,
		Education:         v.Education,
		ExperienceDetails: v.ExperienceDetails,
		HasExperience:     v.HasExperience,
		PasswordSet:       v.Password != "",
	}
}

// FormResponse is the JSON shape of the form view.
type FormResponse struct {
	Values        valuesDTO                `json:"values"`
	Errors        map[model.FieldID]string `json:"errors"`
	VisibleErrors map[model.FieldID]string `json:"visible_errors"`
	Touched       []model.FieldID          `json:"touched"`
	Skills        []string                 `json:"skills"`
	SkillInput    string                   `json:"skill_input"`
	File          string                   `json:"file"`
	FileSelected  bool                     `json:"file_selected"`
	Ready         bool                     `json:"ready"`
	Submissions   int                      `json:"submissions"`
}

func newFormResponse(v types.FormView) FormResponse { //nolint:gocritic // hugeParam
	return FormResponse{
		Values:        newValuesDTO(v.Values),
		Errors:        nonNil(v.Errors),
		VisibleErrors: nonNil(v.VisibleErrors),
		Touched:       nonNilSlice(v.Touched),
		Skills:        nonNilSlice(v.Skills),
		SkillInput:    v.SkillInput,
		File:          v.File,
		FileSelected:  v.FileSelected,
		Ready:         v.Ready,
		Submissions:   v.Submissions,
	}
}

// SubmissionResponse is an accepted snapshot as returned by the API.
// Passwords are never included.
type SubmissionResponse struct {
	ID                string    `json:"id"`
	Seq               int       `json:"seq"`
	SubmittedAt       time.Time `json:"submitted_at"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Mobile            string    `json:"mobile"`
	Gender            string    `json:"gender"`
	Location          string    `json:"location"`
	Education         string    `json:"education"`
	Skills            []string  `json:"skills"`
	HasExperience     bool      `json:"has_experience"`
	ExperienceDetails string    `json:"experience_details,omitempty"`
	File              string    `json:"file"`
}

func newSubmissionResponse(s model.Snapshot) SubmissionResponse { //nolint:gocritic // hugeParam
	return SubmissionResponse{
		ID:                s.ID,
		Seq:               s.Seq,
		SubmittedAt:       s.SubmittedAt,
		Name:              s.Values.Name,
		Email:             s.Values.Email,
		Mobile:            s.Values.Mobile,
		Gender:            s.Values.Gender,
		Location:          s.Values.Location,
		Education:         s.Values.Education,
		Skills:            nonNilSlice(s.Skills),
		HasExperience:     s.HasExperience,
		ExperienceDetails: s.Values.ExperienceDetails,
		File:              s.File,
	}
}

// SubmitResponse is returned by POST /form/submit.
type SubmitResponse struct {
	Accepted   bool                `json:"accepted"`
	Submission *SubmissionResponse `json:"submission,omitempty"`
	Form       FormResponse        `json:"form"`
}

// SubmissionsResponse is returned by GET /submissions.
type SubmissionsResponse struct {
	Items []SubmissionResponse `json:"items"`
	Count int                  `json:"count"`
}

func nonNil(m map[model.FieldID]string) map[model.FieldID]string {
	if m == nil {
		return map[model.FieldID]string{}
	}
	return m
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

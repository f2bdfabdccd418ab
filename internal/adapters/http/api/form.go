package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/intake/internal/domain/model"
)

// FormHandler translates HTTP requests into form input events.
type FormHandler struct {
	deps Dependencies
}

// NewFormHandler creates a new form handler.
func NewFormHandler(deps Dependencies) *FormHandler {
	return &FormHandler{deps: deps}
}

// HandleGetForm handles GET /form.
func (h *FormHandler) HandleGetForm(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "api.get_form", model.Event{Kind: model.EventView})
}

// HandleSetField handles POST /form/fields.
func (h *FormHandler) HandleSetField(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_field"
	var req fieldRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Field) == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing field")))
		return
	}
	h.dispatch(w, r, op, model.Event{
		Kind:  model.EventSetField,
		Field: model.FieldID(req.Field),
		Value: req.Value,
	})
}

// HandleTouch handles POST /form/touched.
func (h *FormHandler) HandleTouch(w http.ResponseWriter, r *http.Request) {
	const op = "api.touch"
	var req touchedRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Field) == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing field")))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventTouch, Field: model.FieldID(req.Field)})
}

// HandleExperience handles POST /form/experience.
func (h *FormHandler) HandleExperience(w http.ResponseWriter, r *http.Request) {
	const op = "api.toggle_experience"
	var req experienceRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.HasExperience == nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing has_experience")))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventToggleExperience, Flag: *req.HasExperience})
}

// HandleSkillInput handles PUT /form/skills/input.
func (h *FormHandler) HandleSkillInput(w http.ResponseWriter, r *http.Request) {
	const op = "api.skill_input"
	var req skillRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventSkillInput, Value: req.Text})
}

// HandleCommitSkill handles POST /form/skills. Blank text is accepted and
// ignored, like pressing enter on an empty input.
func (h *FormHandler) HandleCommitSkill(w http.ResponseWriter, r *http.Request) {
	const op = "api.commit_skill"
	var req skillRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventCommitSkill, Value: req.Text})
}

// HandleRemoveSkill handles DELETE /form/skills/{skill}.
func (h *FormHandler) HandleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "api.remove_skill", model.Event{
		Kind:  model.EventRemoveSkill,
		Value: r.PathValue("skill"),
	})
}

// HandleSelectFile handles POST /form/file.
func (h *FormHandler) HandleSelectFile(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_file"
	var req fileRequest
	if err := decode(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.dispatch(w, r, op, model.Event{Kind: model.EventSelectFile, Value: req.Name})
}

// HandleClearFile handles DELETE /form/file.
func (h *FormHandler) HandleClearFile(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "api.clear_file", model.Event{Kind: model.EventSelectFile})
}

// HandleSubmit handles POST /form/submit. A form that is not ready is not an
// error: the response says accepted=false.
func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	out, err := h.deps.Dispatch(r.Context(), model.Event{Kind: model.EventSubmit})
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := SubmitResponse{Accepted: out.Accepted, Form: newFormResponse(out.Form)}
	if out.Submission != nil {
		sub := newSubmissionResponse(*out.Submission)
		resp.Submission = &sub
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FormHandler) dispatch(w http.ResponseWriter, r *http.Request, op string, ev model.Event) { //nolint:gocritic // hugeParam
	out, err := h.deps.Dispatch(r.Context(), ev)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newFormResponse(out.Form))
}

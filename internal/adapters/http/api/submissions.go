package api

import "net/http"

// SubmissionsHandler serves the accepted submission history.
type SubmissionsHandler struct {
	deps Dependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps Dependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// HandleList handles GET /submissions.
func (h *SubmissionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.deps.Submissions(r.Context())
	items := make([]SubmissionResponse, len(list))
	for i, s := range list {
		items[i] = newSubmissionResponse(s)
	}
	writeJSON(w, http.StatusOK, SubmissionsResponse{Items: items, Count: len(items)})
}

// HandleGet handles GET /submissions/{id}.
func (h *SubmissionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_submission"
	snap, err := h.deps.Submission(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newSubmissionResponse(snap))
}

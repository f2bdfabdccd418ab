// Package api exposes the form session over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/types"
)

// Request bodies are tiny; anything larger is a client bug.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Dispatch applies one input event and returns the resulting view.
	Dispatch(ctx context.Context, ev model.Event) (types.Outcome, error)

	Submissions(ctx context.Context) []model.Snapshot
	Submission(ctx context.Context, id string) (model.Snapshot, error)
}

// Server wires HTTP routes for the form API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	formHandler        *FormHandler
	submissionsHandler *SubmissionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		formHandler:        NewFormHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	f := s.formHandler
	mux.HandleFunc("GET /form", MetricsMiddleware(f.HandleGetForm, "form"))
	mux.HandleFunc("POST /form/fields", MetricsMiddleware(f.HandleSetField, "form_fields"))
	mux.HandleFunc("POST /form/touched", MetricsMiddleware(f.HandleTouch, "form_touched"))
	mux.HandleFunc("POST /form/experience", MetricsMiddleware(f.HandleExperience, "form_experience"))
	mux.HandleFunc("PUT /form/skills/input", MetricsMiddleware(f.HandleSkillInput, "form_skill_input"))
	mux.HandleFunc("POST /form/skills", MetricsMiddleware(f.HandleCommitSkill, "form_skills"))
	mux.HandleFunc("DELETE /form/skills/{skill...}", MetricsMiddleware(f.HandleRemoveSkill, "form_skills"))
	mux.HandleFunc("POST /form/file", MetricsMiddleware(f.HandleSelectFile, "form_file"))
	mux.HandleFunc("DELETE /form/file", MetricsMiddleware(f.HandleClearFile, "form_file"))
	mux.HandleFunc("POST /form/submit", MetricsMiddleware(f.HandleSubmit, "form_submit"))

	sub := s.submissionsHandler
	mux.HandleFunc("GET /submissions", MetricsMiddleware(sub.HandleList, "submissions"))
	mux.HandleFunc("GET /submissions/{id}", MetricsMiddleware(sub.HandleGet, "submission"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure writes err using the status of its kind.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// decode reads a single JSON object into dst, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// Package site renders the submitted-data history page.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/pkg/logger"
)

// Error constants
var (
	ErrGenerate = errors.New("history page generation failed")
	ErrServe    = errors.New("history page serve failed")
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/history.html.tmpl"))

// HistoryProvider lists accepted submissions in order.
type HistoryProvider interface {
	Submissions(ctx context.Context) []model.Snapshot
}

// Register attaches the history page to mux.
func Register(_ context.Context, mux *http.ServeMux, provider HistoryProvider) {
	if mux == nil {
		panic("mux is nil")
	}
	if provider == nil {
		panic("history provider is nil")
	}

	mux.HandleFunc("GET /{$}", NewRootHandler(provider).HandleRoot)
}

// RootHandler renders the history table.
type RootHandler struct {
	provider HistoryProvider
}

// NewRootHandler creates a new root handler
func NewRootHandler(provider HistoryProvider) *RootHandler {
	return &RootHandler{provider: provider}
}

// row is one rendered history entry.
type row struct {
	Seq    int
	Name   string
	Email  string
	Mobile string
	Gender string
	Skills string
	File   string
}

type page struct {
	Rows []row
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs := h.provider.Submissions(ctx)

	// A Caser keeps state between calls and is not safe for concurrent use.
	title := cases.Title(language.English)
	p := page{Rows: make([]row, 0, len(subs))}
	for i := range subs {
		p.Rows = append(p.Rows, newRow(&subs[i], title))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		err = fmt.Errorf("%w: %w", ErrGenerate, err)
		logger.Get().Error(ctx, "render history page", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Get().Debug(ctx, "write history page", logger.Error(fmt.Errorf("%w: %w", ErrServe, err)))
	}
}

func newRow(s *model.Snapshot, title cases.Caser) row {
	return row{
		Seq:    s.Seq,
		Name:   s.Values.Name,
		Email:  s.Values.Email,
		Mobile: s.Values.Mobile,
		Gender: title.String(s.Values.Gender),
		Skills: strings.Join(s.Skills, ", "),
		File:   s.File,
	}
}

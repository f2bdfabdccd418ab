package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/intake/internal/adapters/http/api"
)

const defaultTimeout = 10 * time.Second

// State is what the server reported after one step.
type State struct {
	Form     api.FormResponse
	Accepted bool
}

// Client applies scenario steps to a form session.
type Client interface {
	Apply(ctx context.Context, st Step) (State, error)
	Submissions(ctx context.Context) (int, error)
}

// HTTPClient talks to the JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(h *HTTPClient) {
		if d > 0 {
			h.client = &http.Client{Timeout: d, Transport: h.client.Transport}
		}
	}
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Apply sends st and decodes the resulting form view.
func (h *HTTPClient) Apply(ctx context.Context, st Step) (State, error) { //nolint:gocritic // hugeParam
	var s State
	switch st.Action {
	case ActionSet:
		return s, h.form(ctx, http.MethodPost, "/form/fields", map[string]string{"field": st.Field, "value": st.Value}, &s)
	case ActionTouch:
		return s, h.form(ctx, http.MethodPost, "/form/touched", map[string]string{"field": st.Field}, &s)
	case ActionExperience:
		return s, h.form(ctx, http.MethodPost, "/form/experience", map[string]bool{"has_experience": st.Flag}, &s)
	case ActionSkillInput:
		return s, h.form(ctx, http.MethodPut, "/form/skills/input", map[string]string{"text": st.Value}, &s)
	case ActionSkill:
		return s, h.form(ctx, http.MethodPost, "/form/skills", map[string]string{"text": st.Value}, &s)
	case ActionRemoveSkill:
		return s, h.form(ctx, http.MethodDelete, "/form/skills/"+url.PathEscape(st.Value), nil, &s)
	case ActionFile:
		return s, h.form(ctx, http.MethodPost, "/form/file", map[string]string{"name": st.Value}, &s)
	case ActionClearFile:
		return s, h.form(ctx, http.MethodDelete, "/form/file", nil, &s)
	case ActionView:
		return s, h.form(ctx, http.MethodGet, "/form", nil, &s)
	case ActionSubmit:
		var resp api.SubmitResponse
		if err := h.do(ctx, http.MethodPost, "/form/submit", nil, &resp); err != nil {
			return s, err
		}
		return State{Form: resp.Form, Accepted: resp.Accepted}, nil
	default:
		return s, fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
}

// Submissions returns the length of the accepted history.
func (h *HTTPClient) Submissions(ctx context.Context) (int, error) {
	var resp api.SubmissionsResponse
	if err := h.do(ctx, http.MethodGet, "/submissions", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (h *HTTPClient) form(ctx context.Context, method, path string, body any, s *State) error {
	return h.do(ctx, method, path, body, &s.Form)
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: marshal request body: %w", ErrRequest, err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrRequest, method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrRequest, err)
	}
	return nil
}

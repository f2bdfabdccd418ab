package replay

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/pkg/logger"
)

// Mismatch is one expectation the server did not meet.
type Mismatch struct {
	Step   int
	Action string
	Check  string
	Want   string
	Got    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d (%s): %s: want %s, got %s", m.Step, m.Action, m.Check, m.Want, m.Got)
}

// Report summarizes one scenario run.
type Report struct {
	Scenario   string
	Steps      int
	Mismatches []Mismatch
}

// OK reports whether every expectation held.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Runner replays scenarios against a Client.
type Runner struct {
	client Client
	logger logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner over client.
func NewRunner(client Client, opts ...RunnerOption) *Runner {
	r := &Runner{client: client, logger: logger.Get()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies every step in order. Mismatches are collected; transport
// errors abort the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	rep := &Report{Scenario: sc.Name}
	r.logger.Info(ctx, "replaying scenario", logger.String("scenario", sc.Name), logger.Int("steps", len(sc.Steps)))

	for i, st := range sc.Steps {
		n := i + 1
		state, err := r.client.Apply(ctx, st)
		if err != nil {
			return rep, fmt.Errorf("step %d (%s): %w", n, st.Action, err)
		}
		rep.Steps = n

		if st.Expect == nil {
			continue
		}
		found, err := r.check(ctx, n, &st, state)
		if err != nil {
			return rep, fmt.Errorf("step %d (%s): %w", n, st.Action, err)
		}
		for _, m := range found {
			r.logger.Warn(ctx, "expectation failed", logger.String("scenario", sc.Name), logger.String("mismatch", m.String()))
		}
		rep.Mismatches = append(rep.Mismatches, found...)
	}

	r.logger.Info(ctx, "scenario finished",
		logger.String("scenario", sc.Name),
		logger.Int("steps", rep.Steps),
		logger.Int("mismatches", len(rep.Mismatches)))
	return rep, nil
}

func (r *Runner) check(ctx context.Context, n int, st *Step, s State) ([]Mismatch, error) { //nolint:gocritic // hugeParam
	var out []Mismatch
	e := st.Expect
	add := func(check, want, got string) {
		out = append(out, Mismatch{Step: n, Action: st.Action, Check: check, Want: want, Got: got})
	}

	if e.Ready != nil && *e.Ready != s.Form.Ready {
		add("ready", fmt.Sprint(*e.Ready), fmt.Sprint(s.Form.Ready))
	}
	if e.Accepted != nil && *e.Accepted != s.Accepted {
		add("accepted", fmt.Sprint(*e.Accepted), fmt.Sprint(s.Accepted))
	}
	for field, want := range e.VisibleErrors {
		got := s.Form.VisibleErrors[model.FieldID(field)]
		if got != want {
			add("visible_errors."+field, fmt.Sprintf("%q", want), fmt.Sprintf("%q", got))
		}
	}
	if e.NoVisibleErrors && len(s.Form.VisibleErrors) > 0 {
		add("visible_errors", "none", visibleFields(s.Form.VisibleErrors))
	}
	if e.Skills != nil && !slices.Equal(e.Skills, s.Form.Skills) {
		add("skills", fmt.Sprint(e.Skills), fmt.Sprint(s.Form.Skills))
	}
	if e.SkillInput != nil && *e.SkillInput != s.Form.SkillInput {
		add("skill_input", fmt.Sprintf("%q", *e.SkillInput), fmt.Sprintf("%q", s.Form.SkillInput))
	}
	if e.File != nil && *e.File != s.Form.File {
		add("file", fmt.Sprintf("%q", *e.File), fmt.Sprintf("%q", s.Form.File))
	}
	if e.Submissions != nil {
		got, err := r.client.Submissions(ctx)
		if err != nil {
			return out, err
		}
		if got != *e.Submissions {
			add("submissions", fmt.Sprint(*e.Submissions), fmt.Sprint(got))
		}
	}
	return out, nil
}

func visibleFields(m map[model.FieldID]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

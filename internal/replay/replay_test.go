package replay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/intake/internal/adapters/http/api"
	service "github.com/okian/intake/internal/app"
	"github.com/okian/intake/internal/replay"
	"github.com/okian/intake/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := service.New(service.WithLogger(logger.Nop()))
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunner_AshaScenario(t *testing.T) {
	srv := newServer(t)
	sc, err := replay.LoadFile("testdata/asha.yaml")
	require.NoError(t, err)
	assert.Equal(t, "asha happy path", sc.Name)

	client := replay.NewHTTPClient(srv.URL, replay.WithTimeout(5*time.Second))
	rep, err := replay.NewRunner(client, replay.WithLogger(logger.Nop())).Run(context.Background(), sc)
	require.NoError(t, err)

	assert.Equal(t, len(sc.Steps), rep.Steps)
	assert.True(t, rep.OK(), "mismatches: %v", rep.Mismatches)
}

func TestRunner_ReportsMismatches(t *testing.T) {
	srv := newServer(t)
	sc, err := replay.Parse(strings.NewReader(`
name: wrong expectations
steps:
  - action: set
    field: mobile
    value: "12345"
    expect:
      ready: true
      visible_errors:
        mobile: Mobile is required
  - action: submit
    expect:
      accepted: true
      submissions: 1
`))
	require.NoError(t, err)

	rep, err := replay.NewRunner(replay.NewHTTPClient(srv.URL), replay.WithLogger(logger.Nop())).Run(context.Background(), sc)
	require.NoError(t, err)
	require.False(t, rep.OK())

	checks := make([]string, 0, len(rep.Mismatches))
	for _, m := range rep.Mismatches {
		checks = append(checks, m.Check)
	}
	assert.ElementsMatch(t, []string{"ready", "visible_errors.mobile", "accepted", "submissions"}, checks)

	first := rep.Mismatches[0]
	assert.Equal(t, 1, first.Step)
	assert.Contains(t, first.String(), "step 1 (set)")
}

func TestRunner_StopsOnRequestError(t *testing.T) {
	srv := newServer(t)
	sc := &replay.Scenario{
		Name: "unknown field",
		Steps: []replay.Step{
			{Action: replay.ActionView},
			{Action: replay.ActionSet, Field: "age", Value: "30"},
			{Action: replay.ActionView},
		},
	}

	rep, err := replay.NewRunner(replay.NewHTTPClient(srv.URL), replay.WithLogger(logger.Nop())).Run(context.Background(), sc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, replay.ErrRequest))
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, 1, rep.Steps)
}

func TestHTTPClient_SkillRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	client := replay.NewHTTPClient(srv.URL + "/")

	_, err := client.Apply(ctx, replay.Step{Action: replay.ActionSkill, Value: "CI/CD"})
	require.NoError(t, err)
	st, err := client.Apply(ctx, replay.Step{Action: replay.ActionSkillInput, Value: "draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CI/CD"}, st.Form.Skills)
	assert.Equal(t, "draft", st.Form.SkillInput)

	st, err = client.Apply(ctx, replay.Step{Action: replay.ActionRemoveSkill, Value: "CI/CD"})
	require.NoError(t, err)
	assert.Empty(t, st.Form.Skills)

	st, err = client.Apply(ctx, replay.Step{Action: replay.ActionFile, Value: "cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", st.Form.File)

	st, err = client.Apply(ctx, replay.Step{Action: replay.ActionClearFile})
	require.NoError(t, err)
	assert.Equal(t, "No file uploaded", st.Form.File)

	st, err = client.Apply(ctx, replay.Step{Action: replay.ActionExperience, Flag: true})
	require.NoError(t, err)
	assert.Equal(t, "Experience details required", st.Form.VisibleErrors["experienceDetails"])

	n, err := client.Submissions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = client.Apply(ctx, replay.Step{Action: "dance"})
	assert.ErrorIs(t, err, replay.ErrUnknownAction)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"no steps":       "name: empty\n",
		"unknown action": "steps:\n  - action: dance\n",
		"missing field":  "steps:\n  - action: set\n    value: x\n",
		"unknown key":    "steps:\n  - action: view\n    colour: red\n",
		"not yaml":       "steps: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := replay.Parse(strings.NewReader(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, replay.ErrInvalidScenario)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := replay.LoadFile("testdata/nope.yaml")
	require.Error(t, err)
}

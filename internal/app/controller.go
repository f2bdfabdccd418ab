package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/intake/internal/adapters/repository"
	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/internal/domain/skills"
	"github.com/okian/intake/internal/domain/types"
	"github.com/okian/intake/internal/domain/validation"
	"github.com/okian/intake/pkg/logger"
	"github.com/okian/intake/pkg/metrics"
)

// Controller is the form session state machine. It is always in the editing
// state; a successful submit stores a snapshot and starts a fresh form.
//
// Controller is not safe for concurrent use. Service serializes access.
type Controller struct {
	engine *validation.Engine
	store  repository.Store
	logger logger.Logger
	clock  func() time.Time
	newID  func() string

	requireTouched bool
	noFileLabel    string

	values  model.Values
	skills  skills.Set
	input   skills.Buffer
	file    string
	touched map[model.FieldID]struct{}
	errors  validation.Result
	ready   bool
}

// NewController creates a session with an empty form.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		clock:          time.Now,
		newID:          uuid.NewString,
		requireTouched: true,
		noFileLabel:    model.NoFileLabel,
		skills:         skills.NewOrderedSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		c.engine = validation.New()
	}
	if c.store == nil {
		c.store = repository.NewMemoryStore()
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	c.logger = c.logger.Named("form")

	c.reset()
	return c
}

// SetField stores raw as the value of id, marks it touched and re-validates it
// along with its dependents. hasExperience is parsed as a boolean.
func (c *Controller) SetField(ctx context.Context, id model.FieldID, raw string) error {
	if id == model.FieldSkills {
		return fmt.Errorf("%w: %s", ErrNotScalar, id)
	}
	next, err := c.values.With(id, raw)
	if err != nil {
		return err
	}
	if id == model.FieldHasExperience {
		c.ToggleExperience(ctx, next.HasExperience)
		return nil
	}

	c.values = next
	c.touch(id)
	c.revalidate(id)

	c.logger.Debug(ctx, "field updated",
		logger.String("field", id.String()),
		logger.String("error", c.errors[id]),
		logger.Bool("ready", c.ready),
	)
	return nil
}

// SetTouched marks id as interacted with. The value is unchanged.
func (c *Controller) SetTouched(ctx context.Context, id model.FieldID) error {
	if !id.Known() {
		return fmt.Errorf("%w: %q", model.ErrUnknownField, id)
	}
	c.touch(id)
	c.updateReady()
	return nil
}

// ToggleExperience sets the experience flag and re-validates experienceDetails.
func (c *Controller) ToggleExperience(ctx context.Context, flag bool) {
	c.values.HasExperience = flag
	c.touch(model.FieldHasExperience)
	c.revalidate(model.FieldHasExperience)

	c.logger.Debug(ctx, "experience toggled", logger.Bool("hasExperience", flag))
}

// SetSkillInput replaces the pending skill text.
func (c *Controller) SetSkillInput(ctx context.Context, text string) {
	c.input.Set(text)
}

// CommitSkill puts raw into the skill input and commits it, exactly as if the
// user had typed raw and pressed enter.
func (c *Controller) CommitSkill(ctx context.Context, raw string) bool {
	c.input.Set(raw)
	return c.CommitSkillInput(ctx)
}

// CommitSkillInput commits the pending skill text. It reports whether a new
// tag was added.
func (c *Controller) CommitSkillInput(ctx context.Context) bool {
	added, attempted := c.input.Commit(c.skills)
	if !attempted {
		return false
	}
	if !added {
		metrics.RecordSkillDuplicate()
		c.logger.Debug(ctx, "duplicate skill discarded")
		return false
	}

	metrics.RecordSkillAdded()
	c.skillsChanged(ctx)
	return true
}

// RemoveSkill deletes skill from the tag list. It reports whether it was present.
func (c *Controller) RemoveSkill(ctx context.Context, skill string) bool {
	if _, removed := c.skills.Remove(skill); !removed {
		return false
	}
	metrics.RecordSkillRemoved()
	c.skillsChanged(ctx)
	return true
}

// SelectFile records the chosen file's display name. An empty name clears it.
func (c *Controller) SelectFile(ctx context.Context, name string) {
	c.file = name
	c.logger.Debug(ctx, "file selected", logger.String("file", c.fileLabel()))
}

// AttemptSubmit stores a snapshot of the form and resets it when the form is
// ready. When it is not, nothing changes and ok is false.
func (c *Controller) AttemptSubmit(ctx context.Context) (snap model.Snapshot, ok bool, err error) {
	if !c.ready {
		metrics.RecordSubmitRejected()
		c.logger.Debug(ctx, "submit ignored, form not ready", logger.Int("errors", len(c.errors)))
		return model.Snapshot{}, false, nil
	}

	candidate := model.Snapshot{
		ID:            c.newID(),
		SubmittedAt:   c.clock().UTC(),
		Values:        c.values,
		Skills:        c.skills.List(),
		HasExperience: c.values.HasExperience,
		File:          c.fileLabel(),
	}

	stored, err := c.store.Append(ctx, candidate)
	if err != nil {
		metrics.RecordErrorByComponent("form", "store_append")
		return model.Snapshot{}, false, fmt.Errorf("append submission: %w", err)
	}

	metrics.RecordSubmissionAccepted()
	c.logger.Info(ctx, "submission accepted",
		logger.String("id", stored.ID),
		logger.Int("seq", stored.Seq),
		logger.Strings("skills", stored.Skills),
	)

	c.reset()
	return stored, true, nil
}

// Ready reports whether the form can be submitted.
func (c *Controller) Ready() bool { return c.ready }

// Errors returns every current validation message.
func (c *Controller) Errors() validation.Result { return c.errors.Clone() }

// VisibleErrors returns the messages of touched fields.
func (c *Controller) VisibleErrors() validation.Result {
	out := make(validation.Result)
	for id, msg := range c.errors {
		if _, ok := c.touched[id]; ok && msg != "" {
			out[id] = msg
		}
	}
	return out
}

// Values returns the current scalar values.
func (c *Controller) Values() model.Values { return c.values }

// Skills returns the current tag list.
func (c *Controller) Skills() []string { return c.skills.List() }

// Touched reports whether id has been interacted with.
func (c *Controller) Touched(id model.FieldID) bool {
	_, ok := c.touched[id]
	return ok
}

// View assembles the rendering-layer state.
func (c *Controller) View(ctx context.Context) types.FormView {
	touched := make([]model.FieldID, 0, len(c.touched))
	for _, id := range model.AllFields {
		if _, ok := c.touched[id]; ok {
			touched = append(touched, id)
		}
	}

	return types.FormView{
		Values:        c.values,
		Errors:        c.errors.Clone(),
		VisibleErrors: c.VisibleErrors(),
		Touched:       touched,
		Skills:        c.skills.List(),
		SkillInput:    c.input.Text(),
		File:          c.fileLabel(),
		FileSelected:  c.file != "",
		Ready:         c.ready,
		Submissions:   c.store.Count(ctx),
	}
}

func (c *Controller) candidate() validation.Candidate {
	return validation.Candidate{Values: c.values, Skills: c.skills.List()}
}

func (c *Controller) touch(id model.FieldID) {
	c.touched[id] = struct{}{}
}

// revalidate refreshes id and its dependents. Dependents become touched so
// their messages show without a separate interaction.
func (c *Controller) revalidate(id model.FieldID) {
	var affected []model.FieldID
	c.errors, affected = c.engine.Revalidate(c.candidate(), c.errors, id)
	for _, f := range affected {
		if f != id {
			c.touch(f)
		}
		if c.errors[f] != "" {
			metrics.RecordValidationFailure(f.String())
		}
	}
	c.updateReady()
}

func (c *Controller) skillsChanged(ctx context.Context) {
	c.touch(model.FieldSkills)
	c.revalidate(model.FieldSkills)
	c.logger.Debug(ctx, "skills updated", logger.Strings("skills", c.skills.List()))
}

func (c *Controller) updateReady() {
	c.ready = c.errors.Valid() && (!c.requireTouched || len(c.touched) > 0)
}

func (c *Controller) fileLabel() string {
	if c.file == "" {
		return c.noFileLabel
	}
	return c.file
}

func (c *Controller) reset() {
	c.values = model.Values{}
	c.skills.Reset()
	c.input.Clear()
	c.file = ""
	c.touched = make(map[model.FieldID]struct{})
	c.errors = c.engine.Validate(c.candidate())
	c.updateReady()
}

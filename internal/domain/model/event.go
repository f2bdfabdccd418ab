package model

import "time"

// EventKind identifies a rendering-layer input event.
type EventKind string

// Input event kinds.
const (
	EventSetField         EventKind = "set_field"
	EventTouch            EventKind = "touch"
	EventToggleExperience EventKind = "toggle_experience"
	EventSkillInput       EventKind = "skill_input"
	EventCommitSkill      EventKind = "commit_skill"
	EventRemoveSkill      EventKind = "remove_skill"
	EventSelectFile       EventKind = "select_file"
	EventSubmit           EventKind = "submit"
	EventView             EventKind = "view"
)

// Event is a single user interaction delivered to the form session.
type Event struct {
	EventID string    // correlation id for logs
	Kind    EventKind // what happened
	Field   FieldID   // target field for set_field and touch
	Value   string    // raw text: field value, skill text, skill to delete or file name
	Flag    bool      // experience checkbox state
	TS      time.Time // when the event was received
}

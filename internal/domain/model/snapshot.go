package model

import "time"

// Snapshot is an accepted submission. It is built once at submit time and
// never mutated afterwards; holders that hand it out must Clone it.
type Snapshot struct {
	ID            string    `json:"id"`
	Seq           int       `json:"seq"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Values        Values    `json:"values"`
	Skills        []string  `json:"skills"`
	HasExperience bool      `json:"hasExperience"`
	File          string    `json:"file"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Skills = append([]string(nil), s.Skills...)
	return c
}

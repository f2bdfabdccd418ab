// Package skills maintains the ordered, de-duplicated set of skill tags.
package skills

import "strings"

// Set records skill tags in entry order.
type Set interface {
	// Add trims raw and appends it when it is non-empty and not yet present.
	// Returns the resulting tags and whether the set changed.
	Add(raw string) ([]string, bool)

	// Remove deletes the first tag exactly equal to skill.
	// Returns the resulting tags and whether the set changed.
	Remove(skill string) ([]string, bool)

	// List returns a copy of the tags in entry order.
	List() []string

	Contains(skill string) bool
	Len() int

	// Reset empties the set.
	Reset()
}

// orderedSet implements Set with a slice for order and a map for membership.
// It is not safe for concurrent use; the owning session serializes access.
type orderedSet struct {
	items    []string
	index    map[string]struct{}
	capacity int
}

// NewOrderedSet creates an empty skill set.
func NewOrderedSet(opts ...Option) Set {
	s := &orderedSet{}

	for _, opt := range opts {
		opt(s)
	}

	s.items = make([]string, 0, s.capacity)
	s.index = make(map[string]struct{}, s.capacity)
	return s
}

func (s *orderedSet) Add(raw string) ([]string, bool) {
	skill := strings.TrimSpace(raw)
	if skill == "" {
		return s.List(), false
	}
	if _, exists := s.index[skill]; exists {
		return s.List(), false
	}
	s.items = append(s.items, skill)
	s.index[skill] = struct{}{}
	return s.List(), true
}

func (s *orderedSet) Remove(skill string) ([]string, bool) {
	if _, exists := s.index[skill]; !exists {
		return s.List(), false
	}
	for i, item := range s.items {
		if item == skill {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	delete(s.index, skill)
	return s.List(), true
}

func (s *orderedSet) List() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *orderedSet) Contains(skill string) bool {
	_, ok := s.index[skill]
	return ok
}

func (s *orderedSet) Len() int { return len(s.items) }

func (s *orderedSet) Reset() {
	s.items = s.items[:0]
	s.index = make(map[string]struct{}, s.capacity)
}

package skills

import "strings"

// Buffer is the pending skill text typed by the user before committing it.
type Buffer struct {
	text string
}

// Set replaces the pending text.
func (b *Buffer) Set(text string) { b.text = text }

// Text returns the pending text as typed.
func (b *Buffer) Text() string { return b.text }

// Clear empties the buffer.
func (b *Buffer) Clear() { b.text = "" }

// Commit tries to add the pending text to set.
//
// Whitespace-only text is ignored and left in the buffer. Otherwise the buffer
// is cleared after the add attempt whether or not the tag was new, so a
// duplicate is discarded silently.
func (b *Buffer) Commit(set Set) (added, attempted bool) {
	if strings.TrimSpace(b.text) == "" {
		return false, false
	}
	_, added = set.Add(b.text)
	b.text = ""
	return added, true
}

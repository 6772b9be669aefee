// Package history tracks the most recently rendered prompts for the
// caller layer (studio TUI, serve session). The core renderer knows
// nothing about history.
package history

// Limit is the maximum number of prompts kept.
const Limit = 8

// History is an ordered, most-recent-first list of distinct prompts.
// Prompts are de-duplicated by exact text match: re-rendering a known
// prompt moves it to the front instead of adding a duplicate.
//
// History is owned by a single caller and is not safe for concurrent use.
type History struct {
	entries []string
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Push records a prompt as most recent. An existing entry with the exact
// same text is moved to the front; the oldest entry is dropped once the
// limit is reached.
func (h *History) Push(prompt string) {
	for i, e := range h.entries {
		if e == prompt {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append([]string{prompt}, h.entries...)
	if len(h.entries) > Limit {
		h.entries = h.entries[:Limit]
	}
}

// Entries returns a copy of the prompts, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// At returns the entry at position i (0 = most recent), or "" if out of
// range. Handy for cursor-style recall in the studio.
func (h *History) At(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}

// Len reports the number of stored prompts.
func (h *History) Len() int {
	return len(h.entries)
}

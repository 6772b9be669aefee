// Package session ties together the caller-owned state that lives for one
// run of the application: the palette cache and the prompt history.
//
// Creating this state explicitly per session, instead of as ambient
// globals, is what makes rendering testable: each test constructs a fresh
// session and gets a cold cache.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptink/promptink/pkg/history"
	"github.com/promptink/promptink/pkg/palette"
)

// Session holds the per-run state shared by all renders.
type Session struct {
	// ID identifies the session in logs and diagnostics.
	ID string

	// StartedAt is the session creation time.
	StartedAt time.Time

	// Palettes is the palette cache injected into every renderer created
	// during this session. Unbounded, no eviction.
	Palettes palette.Cache

	// History is the MRU list of rendered prompts, owned by the caller
	// layer (the core never touches it).
	History *history.History
}

// New creates a session with a fresh in-memory palette cache.
func New() *Session {
	return WithCache(palette.NewMemoryCache())
}

// WithCache creates a session around an existing palette cache, e.g. a
// Redis-backed cache shared between serve instances. A nil cache falls
// back to a fresh in-memory one.
func WithCache(c palette.Cache) *Session {
	if c == nil {
		c = palette.NewMemoryCache()
	}
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Palettes:  c,
		History:   history.New(),
	}
}

// Package observability provides hooks for metrics and logging around the
// render pipeline.
//
// The core stays free of observability dependencies: hook interfaces are
// defined here with no-op defaults, and a backend (Prometheus,
// OpenTelemetry, plain logging) can be registered once at startup.
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// The renderer and palette caches call the registered hooks:
//
//	observability.Render().OnRenderStart(prompt, seed)
//	// ... draw passes ...
//	observability.Render().OnRenderComplete(prompt, seed, duration)
package observability

import (
	"sync"
	"time"
)

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// OnRenderStart fires after the prompt has been normalized and hashed,
	// before any drawing pass runs.
	OnRenderStart(prompt string, seed uint32)

	// OnRenderComplete fires after the signature pass, with the total
	// wall-clock duration of the render.
	OnRenderComplete(prompt string, seed uint32, duration time.Duration)
}

// CacheHooks receives events from palette cache operations.
type CacheHooks interface {
	// OnPaletteHit records a palette served from cache.
	OnPaletteHit(prompt string)

	// OnPaletteMiss records a palette derived fresh.
	OnPaletteMiss(prompt string)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string, uint32)                   {}
func (NoopRenderHooks) OnRenderComplete(string, uint32, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnPaletteHit(string)  {}
func (NoopCacheHooks) OnPaletteMiss(string) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any renders.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any renders.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}

package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	r := NoopRenderHooks{}
	r.OnRenderStart("aurora", 42)
	r.OnRenderComplete("aurora", 42, time.Second)

	c := NoopCacheHooks{}
	c.OnPaletteHit("aurora")
	c.OnPaletteMiss("aurora")
}

type testRenderHooks struct {
	starts, completes int
}

func (h *testRenderHooks) OnRenderStart(string, uint32)                   { h.starts++ }
func (h *testRenderHooks) OnRenderComplete(string, uint32, time.Duration) { h.completes++ }

type testCacheHooks struct {
	hits, misses int
}

func (h *testCacheHooks) OnPaletteHit(string)  { h.hits++ }
func (h *testCacheHooks) OnPaletteMiss(string) { h.misses++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Render().OnRenderStart("x", 1)
	Cache().OnPaletteMiss("x")
	if customRender.starts != 1 || customCache.misses != 1 {
		t.Error("registered hooks should receive events")
	}

	// Nil registration keeps the current hooks.
	SetRenderHooks(nil)
	if Render() != customRender {
		t.Error("SetRenderHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore noop hooks")
	}
}

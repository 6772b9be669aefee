package art

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/promptink/promptink/pkg/canvas"
	"github.com/promptink/promptink/pkg/palette"
	"github.com/promptink/promptink/pkg/seed"
)

func renderImage(t *testing.T, prompt string, cache palette.Cache) *image.RGBA {
	t.Helper()
	opts := []Option{WithSurface(canvas.NewImage())}
	if cache != nil {
		opts = append(opts, WithCache(cache))
	}
	r := New(opts...)
	r.Render(prompt)
	return r.Image()
}

func samePixels(a, b *image.RGBA) bool {
	return a != nil && b != nil && bytes.Equal(a.Pix, b.Pix)
}

func TestRenderDeterministic(t *testing.T) {
	// Two independent render calls must produce pixel-identical surfaces:
	// same gradient, same shape count and positions, same speckles.
	const prompt = "Bioluminescent forest under a violet moon"

	img1 := renderImage(t, prompt, nil)
	img2 := renderImage(t, prompt, nil)

	if !samePixels(img1, img2) {
		t.Error("two renders of the same prompt should be pixel-identical")
	}
}

func TestRenderDistinguishesPrompts(t *testing.T) {
	img1 := renderImage(t, "crimson tide", nil)
	img2 := renderImage(t, "emerald tide", nil)

	if samePixels(img1, img2) {
		t.Error("different prompts should produce different images")
	}
}

func TestDefaultPromptFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n "},
	}

	want := renderImage(t, DefaultPrompt, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderImage(t, tt.input, nil)
			if !samePixels(got, want) {
				t.Errorf("input %q should render identically to the default prompt", tt.input)
			}
		})
	}
}

func TestRenderIndependentOfCacheState(t *testing.T) {
	// A pre-warmed palette cache must not shift the drawing stream: the
	// palette derives from its own salted stream, so hit and miss renders
	// are pixel-identical.
	const prompt = "glacial canyon at dusk"

	cold := renderImage(t, prompt, palette.NewMemoryCache())

	warmed := palette.NewMemoryCache()
	s := seed.Hash(prompt)
	warmed.GetOrCreate(prompt, func() palette.Palette {
		return palette.Pick(seed.NewStream(s ^ paletteSalt))
	})
	warm := renderImage(t, prompt, warmed)

	if !samePixels(cold, warm) {
		t.Error("cache hit and cache miss renders should be pixel-identical")
	}
}

func TestPaletteStableAcrossRenders(t *testing.T) {
	r := New(WithSurface(canvas.NewImage()))

	p1 := r.Palette("aurora")
	r.Render("aurora")
	p2 := r.Palette("aurora")

	if p1 != p2 {
		t.Errorf("palette should be stable within a session: %v != %v", p1, p2)
	}
}

func TestNilSurfaceIsSilentNoop(t *testing.T) {
	r := New()
	// Must not panic and must not touch the cache.
	r.Render("anything")
	if r.Image() != nil {
		t.Error("Image() without a surface should be nil")
	}
}

func TestSignatureText(t *testing.T) {
	long := strings.Repeat("a", 120)

	tests := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{"short unchanged", "hello", "hello", 5},
		{"exactly 80 unchanged", strings.Repeat("b", 80), strings.Repeat("b", 80), 80},
		{"long truncated", long, strings.Repeat("a", 80) + "…", 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signatureText(tt.input)
			if got != tt.want {
				t.Errorf("signatureText(%d chars) = %q, want %q", len(tt.input), got, tt.want)
			}
			if n := len([]rune(got)); n != tt.maxLen {
				t.Errorf("signature length = %d runes, want %d", n, tt.maxLen)
			}
		})
	}
}

func TestNormalizePromptCaseSensitive(t *testing.T) {
	if normalizePrompt("Aurora") == normalizePrompt("aurora") {
		t.Error("normalization must not change case")
	}
	if normalizePrompt(" aurora ") != "aurora" {
		t.Error("normalization should trim surrounding whitespace")
	}
}

func TestBlobSegmentsClosePath(t *testing.T) {
	xs := []float64{100, 200, 150}
	ys := []float64{100, 120, 220}
	segs := blobSegments(xs, ys, 150, 150)

	if len(segs) != 3 {
		t.Fatalf("got %d segments for 3 vertices, want 3", len(segs))
	}
	last := segs[len(segs)-1]
	if last.X != xs[0] || last.Y != ys[0] {
		t.Error("final segment should return to the first vertex")
	}
}

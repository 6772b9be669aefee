// Package art implements the deterministic generative rendering pipeline.
//
// A prompt string is hashed into a seed, the seed drives reproducible
// random streams, and those streams parametrize a fixed sequence of
// drawing passes onto a raster surface: a diagonal background gradient
// with additive glows, a layer of organic curved shapes, a scatter of
// highlight speckles, and a text signature. The same prompt always
// produces the same pixels.
//
// # Pipeline
//
//	r := art.New(
//	    art.WithSurface(canvas.NewImage()),
//	    art.WithCache(palette.NewMemoryCache()),
//	)
//	r.Render("Bioluminescent forest under a violet moon")
//	img := r.Image()
//
// The palette is derived from its own seed-derived stream, independent of
// the drawing stream, so cache state can never shift the positions of
// shapes or speckles: a prompt's first render and every later render are
// pixel-identical.
package art

import (
	"image"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/promptink/promptink/pkg/canvas"
	"github.com/promptink/promptink/pkg/observability"
	"github.com/promptink/promptink/pkg/palette"
	"github.com/promptink/promptink/pkg/seed"
)

// DefaultPrompt is substituted for empty or whitespace-only input.
const DefaultPrompt = "dreamscape in drifting light"

// paletteSalt separates the palette stream from the drawing stream. Both
// streams derive from the prompt's seed, but the palette consumes its own
// sequence so cache hits and misses leave the drawing stream untouched.
const paletteSalt uint32 = 0x9E3779B9

// maxSignatureLen is the character budget for the signature pass; longer
// prompts are cut there and marked with an ellipsis.
const maxSignatureLen = 80

// Option configures a Renderer.
type Option func(*Renderer)

// WithSurface sets the raster surface to paint on. Without a surface the
// renderer silently no-ops on every Render call.
func WithSurface(s canvas.Surface) Option {
	return func(r *Renderer) { r.surface = s }
}

// WithCache sets the caller-owned palette cache. The cache should live for
// one session so repeated renders of a prompt stay visually stable.
func WithCache(c palette.Cache) Option {
	return func(r *Renderer) { r.palettes = c }
}

// WithLogger sets the logger for per-pass debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// Renderer paints complete artworks from prompt text. It owns no mutable
// state across renders other than the injected palette cache; every
// Render re-seeds its streams and fully overwrites the surface.
type Renderer struct {
	surface  canvas.Surface
	palettes palette.Cache
	logger   *log.Logger
}

// New creates a renderer. By default it has no surface (renders no-op)
// and a fresh in-memory palette cache.
func New(opts ...Option) *Renderer {
	r := &Renderer{palettes: palette.NewMemoryCache()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Palette returns the palette for a prompt, going through the session
// cache. Empty input falls back to DefaultPrompt, mirroring Render.
func (r *Renderer) Palette(prompt string) palette.Palette {
	prompt = normalizePrompt(prompt)
	return r.lookupPalette(prompt, seed.Hash(prompt))
}

// Image exposes the surface's pixel buffer, or nil without a surface.
func (r *Renderer) Image() *image.RGBA {
	if r.surface == nil {
		return nil
	}
	return r.surface.Image()
}

// Render paints a complete artwork for the prompt onto the surface.
//
// Rendering never fails: empty input is replaced by DefaultPrompt, and a
// missing surface makes the call a silent no-op. The four passes run in
// strict order and draw all randomness from one stream, so the image is
// fully determined by the prompt.
func (r *Renderer) Render(prompt string) {
	if r.surface == nil {
		return
	}

	prompt = normalizePrompt(prompt)
	s := seed.Hash(prompt)

	start := time.Now()
	observability.Render().OnRenderStart(prompt, s)
	r.logger.Debug("render start", "prompt", prompt, "seed", s)

	pal := r.lookupPalette(prompt, s)
	rng := seed.NewStream(s)

	r.paintBackground(rng, pal)
	r.paintShapes(rng, pal)
	r.paintHighlights(rng, pal)
	r.paintSignature(prompt)

	observability.Render().OnRenderComplete(prompt, s, time.Since(start))
	r.logger.Debug("render complete", "prompt", prompt, "duration", time.Since(start).Round(time.Millisecond))
}

// lookupPalette serves the prompt's palette from cache, deriving it from
// the salted palette stream on a miss.
func (r *Renderer) lookupPalette(prompt string, s uint32) palette.Palette {
	pal, hit := r.palettes.GetOrCreate(prompt, func() palette.Palette {
		return palette.Pick(seed.NewStream(s ^ paletteSalt))
	})
	if hit {
		observability.Cache().OnPaletteHit(prompt)
	} else {
		observability.Cache().OnPaletteMiss(prompt)
	}
	return pal
}

// paintBackground clears the surface, lays down the diagonal gradient and
// composites 3-5 additive glows.
func (r *Renderer) paintBackground(rng *seed.Stream, pal palette.Palette) {
	side := r.surface.Size()

	r.surface.Clear("#000000")
	r.surface.FillLinearGradient(0, 0, side, side, []canvas.Stop{
		{Pos: 0, Hex: pal[0]},
		{Pos: 0.5, Hex: pal[1]},
		{Pos: 1, Hex: pal[2]},
	})

	glows := 3 + int(rng.Next()*3)
	for i := 0; i < glows; i++ {
		x := rng.Next() * side
		y := rng.Next() * side
		radius := side * (0.18 + rng.Next()*0.35)
		r.surface.Glow(x, y, radius, pal.At(i+3), pal.At(i+4))
	}
	r.logger.Debug("background pass", "glows", glows)
}

// paintShapes draws 6-10 organic filled shapes: irregular polygons whose
// edges are quadratic curves bulging toward the shape center.
func (r *Renderer) paintShapes(rng *seed.Stream, pal palette.Palette) {
	side := r.surface.Size()

	shapes := 6 + int(rng.Next()*5)
	for i := 0; i < shapes; i++ {
		// Center inside the inner 60% of the surface.
		cx := side * (0.2 + rng.Next()*0.6)
		cy := side * (0.2 + rng.Next()*0.6)
		maxRadius := side * (0.12 + rng.Next()*0.20)

		verts := 5 + int(rng.Next()*6)
		xs := make([]float64, verts)
		ys := make([]float64, verts)
		for v := 0; v < verts; v++ {
			angle := 2 * math.Pi * float64(v) / float64(verts)
			radius := maxRadius * (0.6 + rng.Next()*0.5)
			jx := rng.Next()*22 - 11
			jy := rng.Next()*22 - 11
			xs[v] = cx + math.Cos(angle)*radius + jx
			ys[v] = cy + math.Sin(angle)*radius + jy
		}

		alpha := 0.45 + rng.Next()*0.35
		r.surface.FillQuad(xs[0], ys[0], blobSegments(xs, ys, cx, cy), pal.At(i), alpha)
	}
	r.logger.Debug("shape pass", "shapes", shapes)
}

// blobSegments connects the vertices with quadratic curves whose control
// points are the edge midpoints pulled toward the shape center, which
// rounds the polygon into an organic blob.
func blobSegments(xs, ys []float64, cx, cy float64) []canvas.Quad {
	n := len(xs)
	segs := make([]canvas.Quad, 0, n)
	for v := 0; v < n; v++ {
		next := (v + 1) % n
		mx := (xs[v] + xs[next]) / 2
		my := (ys[v] + ys[next]) / 2
		segs = append(segs, canvas.Quad{
			CX: mx + (cx-mx)*0.3,
			CY: my + (cy-my)*0.3,
			X:  xs[next],
			Y:  ys[next],
		})
	}
	return segs
}

// paintHighlights scatters 480-800 tiny circles of the last palette color
// to give the artwork grain.
func (r *Renderer) paintHighlights(rng *seed.Stream, pal palette.Palette) {
	side := r.surface.Size()

	speckles := 480 + int(rng.Next()*320)
	for i := 0; i < speckles; i++ {
		x := rng.Next() * side
		y := rng.Next() * side
		radius := rng.Next() * 2.2
		r.surface.FillCircle(x, y, radius, pal.Last(), 0.28)
	}
	r.logger.Debug("highlight pass", "speckles", speckles)
}

// paintSignature draws the prompt as small monospace text above the
// bottom-left corner.
func (r *Renderer) paintSignature(prompt string) {
	side := r.surface.Size()
	r.surface.Text(signatureText(prompt), 12, side-10, 0.7)
}

// signatureText cuts the prompt to the signature budget, appending a
// single ellipsis when anything was removed.
func signatureText(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= maxSignatureLen {
		return prompt
	}
	return string(runes[:maxSignatureLen]) + "…"
}

// normalizePrompt trims whitespace and substitutes the default prompt for
// empty input. Degenerate input is normalized, never rejected.
func normalizePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return DefaultPrompt
	}
	return prompt
}

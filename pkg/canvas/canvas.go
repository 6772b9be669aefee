// Package canvas provides the raster surface the renderer paints on.
//
// The renderer depends only on the [Surface] capability interface; the
// concrete implementation here is a fixed-size software raster built on
// fogleman/gg. Keeping the surface abstract means the drawing passes can
// be retargeted (native 2D APIs, test doubles) without touching pass
// logic, and lets a missing surface degrade to a silent no-op in the
// renderer.
package canvas

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Side is the fixed side length of the square raster surface.
const Side = 640

// Stop is a positioned color stop of a linear gradient.
type Stop struct {
	Pos float64 // position along the gradient axis in [0, 1]
	Hex string  // #rrggbb color
}

// Quad is one quadratic curve segment of a closed path: the control point
// (CX, CY) followed by the segment endpoint (X, Y).
type Quad struct {
	CX, CY float64
	X, Y   float64
}

// Surface is the drawing capability the renderer consumes. All coordinates
// are in surface units with the origin at the top-left corner.
//
// Implementations are not required to be safe for concurrent use; a
// surface is owned by a single render at a time.
type Surface interface {
	// Size returns the side length of the square surface.
	Size() float64

	// Clear overwrites the entire surface with a solid color.
	Clear(hex string)

	// FillLinearGradient fills the whole surface with a linear gradient
	// running from (x0, y0) to (x1, y1) through the given stops.
	FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop)

	// Glow composites a soft radial glow additively: full strength of the
	// inner color at the center, blending toward the outer color and
	// fading to nothing at the rim. The surface returns to normal
	// compositing for subsequent calls.
	Glow(x, y, radius float64, innerHex, outerHex string)

	// FillQuad fills a closed path that starts at (x, y) and follows the
	// given quadratic segments back around, at the given opacity.
	FillQuad(x, y float64, segs []Quad, hex string, alpha float64)

	// FillCircle fills a circle at the given opacity.
	FillCircle(x, y, radius float64, hex string, alpha float64)

	// Text draws a line of monospace text with its baseline at (x, y).
	Text(s string, x, y float64, alpha float64)

	// Image exposes the pixel buffer for encoding or comparison.
	Image() *image.RGBA
}

// parseHex decodes a #rrggbb string, falling back to black on malformed
// input so drawing never fails mid-pass.
func parseHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

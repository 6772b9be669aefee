// Package palette derives the 6-color palette that a single artwork uses
// across all of its drawing passes.
//
// Colors are picked in HSL space around a random base hue and converted to
// lowercase #rrggbb hex strings. [Pick] consumes exactly [Draws] values
// from its stream in a fixed order, so callers that share a stream can
// account for the position afterwards.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/promptink/promptink/pkg/seed"
)

// Size is the number of colors in a palette.
const Size = 6

// Draws is the exact number of stream values Pick consumes:
// one base hue plus hue/saturation/lightness per slot.
const Draws = 1 + Size*3

// Palette is an ordered sequence of exactly six lowercase #rrggbb colors.
type Palette [Size]string

// Pick derives a palette from the stream. Slot hues fan out from a random
// base hue, alternating direction per slot, with saturation in [0.55, 0.90)
// and lightness in [0.35, 0.75).
func Pick(rng *seed.Stream) Palette {
	base := rng.Next() * 360

	var p Palette
	for i := 0; i < Size; i++ {
		sign := 1.0
		if i%2 == 1 {
			sign = -1.0
		}
		hue := base + sign*rng.Next()*90
		sat := 0.55 + rng.Next()*0.35
		light := 0.35 + rng.Next()*0.40
		p[i] = hslHex(hue, sat, light)
	}
	return p
}

// Last returns the final palette color, used by the highlight pass.
func (p Palette) Last() string {
	return p[Size-1]
}

// At returns the color at index i modulo the palette size, so passes can
// cycle through colors without bounds checks.
func (p Palette) At(i int) string {
	return p[((i%Size)+Size)%Size]
}

// hslHex converts an HSL triple to a lowercase #rrggbb string. The hue is
// wrapped into [0, 360) before conversion; saturation and lightness are
// expected in [0, 1].
func hslHex(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

package canvas

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
)

// glowAlpha is the glow strength at the center of a radial glow. The
// falloff curve takes it to near zero at the rim.
const glowAlpha = 0.45

// ImageSurface is a software raster Surface backed by a fogleman/gg
// context over a Side×Side RGBA buffer.
type ImageSurface struct {
	dc *gg.Context
}

// NewImage creates a fresh surface with an undefined (zeroed) buffer.
// The renderer's background pass overwrites every pixel, so no initial
// clear is required.
func NewImage() *ImageSurface {
	dc := gg.NewContext(Side, Side)
	dc.SetFontFace(basicfont.Face7x13)
	return &ImageSurface{dc: dc}
}

// Size returns the fixed side length.
func (s *ImageSurface) Size() float64 {
	return Side
}

// Clear overwrites the whole surface with a solid color.
func (s *ImageSurface) Clear(hex string) {
	c := parseHex(hex)
	s.dc.SetRGB(c.R, c.G, c.B)
	s.dc.Clear()
}

// FillLinearGradient fills the surface with a linear gradient.
func (s *ImageSurface) FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop) {
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	for _, st := range stops {
		grad.AddColorStop(st.Pos, parseHex(st.Hex))
	}
	s.dc.SetFillStyle(grad)
	s.dc.DrawRectangle(0, 0, Side, Side)
	s.dc.Fill()
}

// Glow composites a radial glow additively over the pixel buffer. gg has
// no additive blend mode, so this writes the pixels directly: channel
// values are summed and clamped, which is what a "lighter" composite does
// on an opaque background.
func (s *ImageSurface) Glow(x, y, radius float64, innerHex, outerHex string) {
	img, ok := s.dc.Image().(*image.RGBA)
	if !ok || radius <= 0 {
		return
	}
	inner := parseHex(innerHex)
	outer := parseHex(outerHex)

	minX := clampInt(int(math.Floor(x-radius)), 0, Side)
	maxX := clampInt(int(math.Ceil(x+radius))+1, 0, Side)
	minY := clampInt(int(math.Floor(y-radius)), 0, Side)
	maxY := clampInt(int(math.Ceil(y+radius))+1, 0, Side)

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			dx := float64(px) + 0.5 - x
			dy := float64(py) + 0.5 - y
			t := math.Sqrt(dx*dx+dy*dy) / radius
			if t >= 1 {
				continue
			}
			a := glowAlpha * (1 - t*t)
			c := lerpColor(inner, outer, t)
			addPixel(img, px, py, c, a)
		}
	}
}

// FillQuad fills a closed path of quadratic curve segments.
func (s *ImageSurface) FillQuad(x, y float64, segs []Quad, hex string, alpha float64) {
	c := parseHex(hex)
	s.dc.SetRGBA(c.R, c.G, c.B, alpha)
	s.dc.MoveTo(x, y)
	for _, q := range segs {
		s.dc.QuadraticTo(q.CX, q.CY, q.X, q.Y)
	}
	s.dc.ClosePath()
	s.dc.Fill()
}

// FillCircle fills a circle at the given opacity.
func (s *ImageSurface) FillCircle(x, y, radius float64, hex string, alpha float64) {
	c := parseHex(hex)
	s.dc.SetRGBA(c.R, c.G, c.B, alpha)
	s.dc.DrawCircle(x, y, radius)
	s.dc.Fill()
}

// Text draws monospace text in translucent white with its baseline at (x, y).
func (s *ImageSurface) Text(str string, x, y float64, alpha float64) {
	s.dc.SetRGBA(1, 1, 1, alpha)
	s.dc.DrawString(str, x, y)
}

// Image exposes the underlying pixel buffer.
func (s *ImageSurface) Image() *image.RGBA {
	img, _ := s.dc.Image().(*image.RGBA)
	return img
}

// addPixel adds c scaled by alpha onto the pixel, clamping each channel.
// The buffer is opaque after the background pass, so alpha stays at 255.
func addPixel(img *image.RGBA, x, y int, c colorful.Color, alpha float64) {
	i := img.PixOffset(x, y)
	pix := img.Pix[i : i+4 : i+4]
	pix[0] = addClamp(pix[0], c.R*alpha)
	pix[1] = addClamp(pix[1], c.G*alpha)
	pix[2] = addClamp(pix[2], c.B*alpha)
	pix[3] = 255
}

func addClamp(base uint8, add float64) uint8 {
	v := float64(base) + add*255
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lerpColor(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Surface = (*ImageSurface)(nil)

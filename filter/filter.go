// Package filter holds full-screen post-processing passes and the processor
// that chains them over a rendered frame.
package filter

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a single full-screen pass. The processor calls Init once before
// the first frame (and again after a resize), then Apply every frame while
// the filter is enabled.
type Filter interface {
	Name() string
	Init(loader ShaderLoader, w, h int) error
	Material() *Material
	Enabled() bool
	Apply(dst, src *ebiten.Image)
}

// ShaderLoader resolves a shader definition name to Kage source.
type ShaderLoader interface {
	LoadShader(name string) ([]byte, error)
}

// ShaderLoaderFunc adapts a plain function to ShaderLoader.
type ShaderLoaderFunc func(name string) ([]byte, error)

func (f ShaderLoaderFunc) LoadShader(name string) ([]byte, error) { return f(name) }

// compileShader is swapped out in tests so no graphics driver is needed.
var compileShader = ebiten.NewShader

// RGBA is a non-premultiplied floating point color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

var (
	Red   = RGBA{R: 1, A: 1}
	Black = RGBA{A: 1}
	White = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}.RGBA()
}

// Vec4 returns the color as a Kage vec4 uniform.
func (c RGBA) Vec4() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

// FromColor converts any color.Color into a non-premultiplied RGBA.
func FromColor(c color.Color) RGBA {
	if v, ok := c.(RGBA); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

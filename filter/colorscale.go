package filter

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ColorScaleName   = "ColorScaleFilter"
	ColorScaleShader = "colorscale.kage"

	ParamFilterColor  = "FilterColor"
	ParamColorDensity = "ColorDensity"
	ParamOverlay      = "Overlay"
	ParamMultiply     = "Multiply"

	DefaultIntensity float32 = 0.7
)

// ColorScaleFilter tints the whole frame with one color. Useful for
// underwater, night or fire looks and for fading to a color.
//
// The intensity is clamped to [0, 1] when rendering, not when stored.
type ColorScaleFilter struct {
	name      string
	color     RGBA
	intensity float32
	overlay   bool
	multiply  bool
	enabled   bool

	material *Material
}

// NewColorScaleFilter returns an opaque red filter at DefaultIntensity.
func NewColorScaleFilter() *ColorScaleFilter {
	return NewColorScaleFilterWith(Red, DefaultIntensity)
}

func NewColorScaleFilterWith(c color.Color, intensity float32) *ColorScaleFilter {
	return &ColorScaleFilter{
		name:      ColorScaleName,
		color:     FromColor(c),
		intensity: intensity,
		enabled:   true,
	}
}

func (f *ColorScaleFilter) Name() string { return f.name }

// SetName renames the filter so several tints can share one processor.
// Rename before adding it to a processor.
func (f *ColorScaleFilter) SetName(name string) {
	if name == "" {
		name = ColorScaleName
	}
	f.name = name
}

// Init creates the material on first activation and pushes every held
// parameter into it. Later calls keep the existing material.
func (f *ColorScaleFilter) Init(loader ShaderLoader, w, h int) error {
	if f.material != nil {
		return nil
	}
	m, err := LoadMaterial(loader, ColorScaleShader)
	if err != nil {
		return err
	}
	f.material = m
	f.push()
	return nil
}

// Reload recompiles the shader and keeps the current parameters. A filter
// that was never initialized is initialized instead.
func (f *ColorScaleFilter) Reload(loader ShaderLoader) error {
	if f.material == nil {
		return f.Init(loader, 0, 0)
	}
	shader, err := loadShader(loader, f.material.Def())
	if err != nil {
		return err
	}
	f.material.replaceShader(shader)
	return nil
}

func (f *ColorScaleFilter) push() {
	f.material.SetColor(ParamFilterColor, f.color)
	f.material.SetFloat(ParamColorDensity, f.intensity)
	f.material.SetBoolean(ParamOverlay, f.overlay)
	f.material.SetBoolean(ParamMultiply, f.multiply)
}

// Material returns the material created by Init, or nil before that.
func (f *ColorScaleFilter) Material() *Material { return f.material }

func (f *ColorScaleFilter) Color() RGBA { return f.color }

func (f *ColorScaleFilter) SetColor(c color.Color) {
	f.color = FromColor(c)
	if f.material != nil {
		f.material.SetColor(ParamFilterColor, f.color)
	}
}

func (f *ColorScaleFilter) Intensity() float32 { return f.intensity }

func (f *ColorScaleFilter) SetIntensity(v float32) {
	f.intensity = v
	if f.material != nil {
		f.material.SetFloat(ParamColorDensity, v)
	}
}

func (f *ColorScaleFilter) Overlay() bool { return f.overlay }

func (f *ColorScaleFilter) SetOverlay(v bool) {
	f.overlay = v
	if f.material != nil {
		f.material.SetBoolean(ParamOverlay, v)
	}
}

func (f *ColorScaleFilter) Multiply() bool { return f.multiply }

func (f *ColorScaleFilter) SetMultiply(v bool) {
	f.multiply = v
	if f.material != nil {
		f.material.SetBoolean(ParamMultiply, v)
	}
}

func (f *ColorScaleFilter) Enabled() bool { return f.enabled }

func (f *ColorScaleFilter) SetEnabled(v bool) { f.enabled = v }

// Params returns the values the next Apply renders with.
func (f *ColorScaleFilter) Params() TintParams {
	return TintParams{
		Color:     f.color,
		Intensity: f.intensity,
		Overlay:   f.overlay,
		Multiply:  f.multiply,
	}
}

// Apply draws src into dst with the tint. Without a compiled shader the
// pixels are tinted on the CPU instead.
func (f *ColorScaleFilter) Apply(dst, src *ebiten.Image) {
	if dst == nil || src == nil {
		return
	}
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw <= 0 || sh <= 0 {
		return
	}

	if shader := f.material.Shader(); shader != nil {
		op := &ebiten.DrawRectShaderOptions{
			Uniforms: f.material.Uniforms(),
			Blend:    ebiten.BlendCopy,
		}
		op.Images[0] = src
		dst.DrawRectShader(sw, sh, shader, op)
		return
	}

	out := image.NewRGBA(image.Rect(0, 0, sw, sh))
	TintImage(out, src, f.Params())
	tinted := ebiten.NewImageFromImage(out)
	dst.DrawImage(tinted, &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy})
	tinted.Deallocate()
}

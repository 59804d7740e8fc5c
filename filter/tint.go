package filter

import (
	"image"
	"image/color"

	"github.com/milk9111/shaderblow/common"
)

// TintParams mirrors the uniforms of colorscale.kage.
type TintParams struct {
	Color     RGBA
	Intensity float32
	Overlay   bool
	Multiply  bool
}

// TintColor applies the color scale blend to a single texel. It matches the
// Kage shader so the CPU path renders the same frame.
func TintColor(c color.Color, p TintParams) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return n
	}

	base := [3]float32{float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255}
	tint := [3]float32{p.Color.R, p.Color.G, p.Color.B}
	d := common.Clamp01(p.Intensity) * p.Color.A

	var out [3]float32
	for i := range base {
		r := base[i]
		if p.Overlay {
			r = common.Overlay(r, tint[i])
		}
		if p.Multiply {
			r *= tint[i]
		}
		if !p.Overlay && !p.Multiply {
			r = tint[i]
		}
		out[i] = common.Lerp(base[i], r, d)
	}

	return color.NRGBA{R: to8(out[0]), G: to8(out[1]), B: to8(out[2]), A: n.A}
}

// TintImage writes the tinted pixels of src into dst. Only the overlapping
// area of the two bounds is touched.
func TintImage(dst *image.RGBA, src image.Image, p TintParams) {
	sb := src.Bounds()
	db := dst.Bounds()
	w := min(sb.Dx(), db.Dx())
	h := min(sb.Dy(), db.Dy())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(db.Min.X+x, db.Min.Y+y, TintColor(src.At(sb.Min.X+x, sb.Min.Y+y), p))
		}
	}
}

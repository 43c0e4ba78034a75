package graphics

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the font used for labels and placeholder text. It is a bitmap
// face so glyph pixels are either fully drawn or not at all.
var Face font.Face = basicfont.Face7x13

// MeasureString returns the pixel size of s drawn in Face.
func MeasureString(s string) image.Point {
	m := Face.Metrics()
	return image.Pt(font.MeasureString(Face, s).Ceil(), m.Height.Ceil())
}

// DrawString draws s with its top-left corner at pt.
func DrawString(dst draw.Image, pt image.Point, s string, c color.Color) {
	(&font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: Face,
		Dot:  fixed.P(pt.X, pt.Y+Face.Metrics().Ascent.Ceil()),
	}).DrawString(s)
}

// DrawOutlinedString draws s in fg over a one pixel outline of bg in the
// four cardinal directions.
func DrawOutlinedString(dst draw.Image, pt image.Point, s string, fg, bg color.Color) {
	for _, d := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		DrawString(dst, pt.Add(d), s, bg)
	}
	DrawString(dst, pt, s, fg)
}

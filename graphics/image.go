package graphics

import (
	"fmt"
	"image"
	"image/color"
)

const (
	debugMinWidth  = 48
	debugMinHeight = 16
)

var debugFill = color.NRGBA{64, 64, 64, 128}

// Semitransparent returns a copy of m with its alpha channel scaled by
// alpha/255. Colors are preserved.
func Semitransparent(m image.Image, alpha uint8) *image.NRGBA {
	b := m.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			c.A = uint8((uint16(c.A)*uint16(alpha) + 0x7f) / 0xff)
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// DebugImage creates a placeholder for a sprite with no known image. The
// nominal width by height area is shaded and the image is labelled with
// "typ:sub". It is never smaller than 48 by 16 so the label fits.
func DebugImage(typ, sub, width, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, max(width, debugMinWidth), max(height, debugMinHeight)))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, debugFill)
		}
	}

	s := fmt.Sprintf("%d:%d", typ, sub)
	size := MeasureString(s)
	b := m.Bounds()
	DrawString(m, image.Pt((b.Dx()-size.X)/2, (b.Dy()-size.Y)/2), s, color.White)

	return m
}

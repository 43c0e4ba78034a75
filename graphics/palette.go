package graphics

import (
	"fmt"
	"image"
	"image/color"
)

// NewPalette converts 768 bytes of RGB triples into a 256 color palette.
func NewPalette(b []byte) (color.Palette, error) {
	if len(b) != paletteBytes {
		return nil, fmt.Errorf("%w: palette is %d bytes, want %d", ErrFormat, len(b), paletteBytes)
	}
	p := make(color.Palette, paletteColors)
	for i := range p {
		p[i] = color.RGBA{b[i*3], b[i*3+1], b[i*3+2], 0xff}
	}
	return p, nil
}

// maskTable converts a palette into the RGBA colors used for masked images.
// Index 0 keeps its color but is fully transparent.
func maskTable(p color.Palette) [paletteColors]color.NRGBA {
	var t [paletteColors]color.NRGBA
	for i := range t {
		if i < len(p) {
			t[i] = color.NRGBAModel.Convert(p[i]).(color.NRGBA)
		}
		t[i].A = 0xff
	}
	t[0].A = 0
	return t
}

func mask(m *image.Paletted) *image.NRGBA {
	t := maskTable(m.Palette)
	b := m.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := t[m.Pix[m.PixOffset(x, y)]]
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}

package export

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

func countColors(m image.Image) map[color.RGBA]int {
	colors := make(map[color.RGBA]int)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)]++
		}
	}
	return colors
}

// uniqueColors returns the colours of m ordered by their packed value, or
// nil if there are more than n.
func uniqueColors(m image.Image, n int) color.Palette {
	h := countColors(m)
	if len(h) > n {
		return nil
	}
	keys := make([]uint32, 0, len(h))
	for c := range h {
		keys = append(keys, uint32(c.R)<<24|uint32(c.G)<<16|uint32(c.B)<<8|uint32(c.A))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	p := make(color.Palette, 0, len(keys))
	for _, k := range keys {
		p = append(p, color.RGBA{uint8(k >> 24), uint8(k >> 16), uint8(k >> 8), uint8(k)})
	}
	return p
}

// Paletted converts m to a paletted image of at most n colours.
func Paletted(m image.Image, n int) *image.Paletted {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= n {
		return pm
	}

	b := m.Bounds()
	p := uniqueColors(m, n)
	if p == nil {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, n), m)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, m)
	case IndexedPNG:
		return png.Encode(w, Paletted(m, maxColors))
	case GIF:
		pm := Paletted(m, maxColors)
		return gif.Encode(w, pm, &gif.Options{NumColors: len(pm.Palette)})
	}
	return errUnknownFormat
}

// WriteFile encodes m to the named file, replacing it if it exists.
func WriteFile(name string, m image.Image, f Format) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if err = Encode(w, m, f); err != nil {
		return err
	}
	return w.Flush()
}

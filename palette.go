package xargon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// Palette images are named palimage0.png to palimage20.png.
const (
	numPalettes   = 21
	paletteFormat = "palimage%d.png"
)

var errNotPaletted = errors.New("xargon: palette image is not paletted")

// ReadPalette returns the palette of an indexed PNG, padded to 256 colours
// with opaque black.
func ReadPalette(file string) (color.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	cp, ok := cfg.ColorModel.(color.Palette)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotPaletted, file)
	}

	p := make(color.Palette, 256)
	for i := range p {
		if i < len(cp) {
			p[i] = color.RGBAModel.Convert(cp[i])
		} else {
			p[i] = color.RGBA{A: 0xff}
		}
	}
	return p, nil
}

// LoadPalettes reads every palette image present in dir, keyed by number.
func LoadPalettes(dir string) (map[int]color.Palette, error) {
	palettes := make(map[int]color.Palette)
	for i := 0; i < numPalettes; i++ {
		p, err := ReadPalette(filepath.Join(dir, fmt.Sprintf(paletteFormat, i)))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		palettes[i] = p
	}
	if len(palettes) == 0 {
		return nil, fmt.Errorf("no palette images in %s", dir)
	}
	return palettes, nil
}

// WritePalette writes p as a 16 by 16 indexed PNG with each pixel set to
// its own index, the layout ReadPalette accepts.
func WritePalette(file string, p color.Palette) error {
	m := image.NewPaletted(image.Rect(0, 0, 16, 16), p)
	for i := range m.Pix {
		m.Pix[i] = uint8(i % len(p))
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package xargon

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/zerkerX/xargonmapper/export"
	"github.com/zerkerX/xargonmapper/graphics"
)

// Extract writes every image in the graphics archive to c.Out as
// RR-IIII.png, where RR is the record and IIII the image number. Images are
// masked unless c.Raw is set. The embedded palettes are written alongside
// as palimage-1.png and palimage-2.png.
func (m *Mapper) Extract(c Config) error {
	a, err := m.loadAssets(&c, false)
	if err != nil {
		return err
	}

	archive, err := m.archive(a)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return err
	}

	var n int
	for i, r := range archive.Records {
		for j := 0; j < r.Len(); j++ {
			var img image.Image
			if c.Raw {
				img, err = r.Raw(j)
			} else {
				img, err = r.Image(j)
			}
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}

			file := filepath.Join(c.Out, fmt.Sprintf("%02d-%04d.png", i, j))
			if err := export.WriteFile(file, img, export.PNG); err != nil {
				return err
			}
			n++
		}
		if c.Progress != nil && r.Len() > 0 {
			c.Progress(fmt.Sprintf("record %d", i))
		}
	}

	embedded := []struct{ id, record int }{
		{graphics.EmbeddedPalette, graphics.PaletteRecord},
		{graphics.AltEmbeddedPalette, graphics.AltPaletteRecord},
	}
	for _, e := range embedded {
		if archive.Records[e.record].Empty() {
			continue
		}
		p, err := archive.Palette(e.record)
		if err != nil {
			return err
		}
		if err := WritePalette(filepath.Join(c.Out, fmt.Sprintf(paletteFormat, e.id)), p); err != nil {
			return err
		}
	}

	m.logger.Info().Int("images", n).Str("dir", c.Out).Msg("extracted images")
	return nil
}

package xargon

import (
	"fmt"
	"image/color"
	"os"

	"github.com/zerkerX/xargonmapper/export"
	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/tile"
)

const defaultWorkers = 4

// Config locates the game data and controls output.
type Config struct {
	Graphics string
	Tiles    string
	Palettes string

	Out    string
	Format export.Format

	// Workers is the number of levels rendered concurrently.
	Workers    int
	HideLabels bool

	// Raw extracts the unmasked indexed images.
	Raw bool

	// Progress, if set, is called after each level is written. It may be
	// called from several goroutines at once.
	Progress func(file string)
}

func (c *Config) workers() int {
	if c.Workers < 1 {
		return defaultWorkers
	}
	return c.Workers
}

// assets is the game data shared read-only between workers.
type assets struct {
	episode  int
	graphics []byte
	palettes map[int]color.Palette
	tiles    *tile.Table
}

func (m *Mapper) loadAssets(c *Config, withTiles bool) (*assets, error) {
	episode, err := Episode(c.Graphics)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(c.Graphics)
	if err != nil {
		return nil, err
	}

	palettes, err := LoadPalettes(c.Palettes)
	if err != nil {
		return nil, err
	}

	a := &assets{
		episode:  episode,
		graphics: b,
		palettes: palettes,
	}

	if withTiles {
		f, err := os.Open(c.Tiles)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if a.tiles, err = tile.Decode(f); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Tiles, err)
		}
	}

	return a, nil
}

// archive decodes a private copy of the graphics archive under the
// episode's default palette.
func (m *Mapper) archive(a *assets) (*graphics.Archive, error) {
	archive, err := graphics.Decode(a.graphics,
		graphics.WithPalettes(a.palettes),
		graphics.WithActivePalette(DefaultPalette(a.episode)),
		graphics.WithLogger(m.logger),
	)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

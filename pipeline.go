package xargon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zerkerX/xargonmapper/export"
	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
	"github.com/zerkerX/xargonmapper/render"
	"github.com/zerkerX/xargonmapper/sprite"
)

func (m *Mapper) findMaps(ctx context.Context, files []string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				errc <- err
				return
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				continue
			}

			select {
			case out <- file:
			case <-ctx.Done():
				errc <- errors.New("render cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func readMap(file string) (*level.Map, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lm, err := level.Decode(f, LevelName(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return lm, nil
}

// selectPalette switches archive to the palette for the named level,
// keeping the current one if that palette was not loaded.
func (m *Mapper) selectPalette(archive *graphics.Archive, episode int, name string) error {
	id := LevelPalette(episode, name)
	if !archive.HasPalette(id) {
		m.logger.Warn().Str("level", name).Int("palette", id).Msg("palette not loaded, using current")
		return nil
	}
	return archive.ChangePalette(id)
}

func (m *Mapper) renderLevel(c *Config, a *assets, archive *graphics.Archive, defs []sprite.Definition, file string) error {
	lm, err := readMap(file)
	if err != nil {
		return err
	}

	if err := m.selectPalette(archive, a.episode, lm.Name); err != nil {
		return err
	}

	// Sprites are built from the archive's derived images, so after any
	// palette change.
	catalog, err := sprite.Build(defs, archive)
	if err != nil {
		m.logger.Warn().Err(err).Str("level", lm.Name).Msg("skipping unresolved sprites")
	}

	render.ApplyFixups(lm, a.episode)

	opts := []render.Option{render.WithLogger(m.logger.With().Str("level", lm.Name).Logger())}
	if c.HideLabels {
		opts = append(opts, render.WithHiddenLabels())
	}

	img, err := render.New(archive, a.tiles, catalog, opts...).Render(lm)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	dir := filepath.Join(c.Out, fmt.Sprintf("Episode%d", a.episode))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	out := filepath.Join(dir, lm.Name+c.Format.Ext())
	if err := export.WriteFile(out, img, c.Format); err != nil {
		return err
	}
	m.logger.Debug().Str("level", lm.Name).Str("file", out).Msg("saved map")

	return nil
}

func (m *Mapper) renderWorker(ctx context.Context, c *Config, a *assets, defs []sprite.Definition, in <-chan string) (<-chan error, error) {
	// Each worker changes the palette of its own archive.
	archive, err := m.archive(a)
	if err != nil {
		return nil, err
	}

	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := m.renderLevel(c, a, archive, defs, file); err != nil {
				errc <- err
				return
			}
			if c.Progress != nil {
				c.Progress(file)
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error reported by any stage, or nil
// once every stage has closed its channel.
func waitForPipeline(errs ...<-chan error) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeErrors fans the error channels of every stage into one, closed once
// all of them are.
func mergeErrors(cs ...<-chan error) <-chan error {
	out := make(chan error, len(cs))

	var wg sync.WaitGroup
	forward := func(c <-chan error) {
		defer wg.Done()
		for err := range c {
			out <- err
		}
	}

	wg.Add(len(cs))
	for _, c := range cs {
		go forward(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// RenderAll renders every map file to an image in c.Out, grouped into one
// directory per episode.
func (m *Mapper) RenderAll(c Config, files []string) error {
	a, err := m.loadAssets(&c, true)
	if err != nil {
		return err
	}

	defs, err := m.db.Definitions(a.episode)
	if err != nil {
		return err
	}
	m.logger.Debug().Int("episode", a.episode).Int("sprites", len(defs)).Msg("loaded sprite catalog")

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	maps, errc, err := m.findMaps(ctx, files)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.workers(); i++ {
		errc, err := m.renderWorker(ctx, &c, a, defs, maps)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// Package render composites a level's tiles and objects into one image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/rs/zerolog"
	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
	"github.com/zerkerX/xargonmapper/sprite"
	"github.com/zerkerX/xargonmapper/tile"
)

const (
	// Width and Height of a rendered level in pixels.
	Width  = level.Width * tile.Width
	Height = level.Height * tile.Height

	// Palette entry used for the background.
	backgroundColour = 250
)

// ErrDraw wraps a failure to draw a single object. It is logged and never
// returned from Render.
var ErrDraw = errors.New("render: failed to draw object")

// PlaceholderFunc creates an image for objects with no catalog entry.
type PlaceholderFunc func(typ, subType, width, height int) image.Image

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for per-object draw errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithHiddenLabels suppresses numeric info labels.
func WithHiddenLabels() Option {
	return func(r *Renderer) {
		r.hideLabels = true
	}
}

// WithPlaceholder overrides how placeholder images are created.
func WithPlaceholder(fn PlaceholderFunc) Option {
	return func(r *Renderer) {
		r.placeholder = fn
	}
}

// Renderer draws levels using one archive, tile table and catalog. The
// archive's palette must not change while Render runs.
type Renderer struct {
	archive *graphics.Archive
	tiles   *tile.Table
	catalog sprite.Catalog

	logger      zerolog.Logger
	hideLabels  bool
	placeholder PlaceholderFunc

	placeholders map[sprite.Key]sprite.Drawable
}

// New returns a Renderer. A nil catalog draws every object as a
// placeholder.
func New(a *graphics.Archive, t *tile.Table, c sprite.Catalog, opts ...Option) *Renderer {
	r := &Renderer{
		archive: a,
		tiles:   t,
		catalog: c,
		logger:  zerolog.Nop(),
		placeholder: func(typ, subType, width, height int) image.Image {
			return graphics.DebugImage(typ, subType, width, height)
		},
		placeholders: make(map[sprite.Key]sprite.Drawable),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render preprocesses m and draws it. Errors resolving tiles are fatal;
// errors drawing objects are logged and the object skipped.
func (r *Renderer) Render(m *level.Map) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.archive.Colour(backgroundColour)), image.Point{}, draw.Src)

	Preprocess(m)

	if err := r.drawTiles(dst, m); err != nil {
		return nil, err
	}

	ctx := &sprite.Context{
		Map:        m,
		HideLabels: r.hideLabels,
	}
	for _, o := range m.Sprites {
		r.drawObject(dst, o, ctx)
	}
	for _, o := range m.Text {
		r.drawObject(dst, o, ctx)
	}

	return dst, nil
}

func (r *Renderer) drawTiles(dst draw.Image, m *level.Map) error {
	for x := 0; x < level.Width; x++ {
		for y := 0; y < level.Height; y++ {
			code := m.Tile(x, y)
			rec, img, err := r.tiles.Resolve(code)
			if err != nil {
				return fmt.Errorf("tile %d,%d: %w", x, y, err)
			}
			src, err := r.archive.Image(rec, img)
			if err != nil {
				return fmt.Errorf("tile %d,%d code %#04x: %w", x, y, code, err)
			}
			pt := image.Pt(x*tile.Width, y*tile.Height)
			draw.Draw(dst, src.Bounds().Add(pt), src, image.Point{}, draw.Over)
		}
	}
	return nil
}

// lookup returns the catalog drawable for o, or a placeholder sized from
// the first object seen with the same type and subtype.
func (r *Renderer) lookup(o *level.Object) sprite.Drawable {
	if r.catalog != nil {
		if d, ok := r.catalog.Lookup(o.Type, o.SubType); ok && d != nil {
			return d
		}
	}
	k := sprite.Key{Type: o.Type, SubType: o.SubType}
	if d, ok := r.placeholders[k]; ok {
		return d
	}
	d := &sprite.Sprite{
		Kind:  sprite.KindFixed,
		Image: r.placeholder(int(o.Type), int(o.SubType), int(o.Width), int(o.Height)),
	}
	r.placeholders[k] = d
	return d
}

func (r *Renderer) drawObject(dst draw.Image, o *level.Object, ctx *sprite.Context) {
	err := func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				err = fmt.Errorf("panic: %v", v)
			}
		}()
		return r.lookup(o).Draw(dst, o, ctx)
	}()
	if err != nil {
		r.logger.Error().
			Err(fmt.Errorf("%w: %w", ErrDraw, err)).
			Int16("type", o.Type).
			Int16("subtype", o.SubType).
			Int16("appearance", o.Appearance).
			Int16("variant", o.Variant).
			Int16("x", o.X).
			Int16("y", o.Y).
			Msg("skipping object")
	}
}

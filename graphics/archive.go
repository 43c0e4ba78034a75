package graphics

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/rs/zerolog"
)

// Archive holds every record of a GRAPHICS file together with the palettes
// the images can be derived under.
//
// The active palette is shared by every record. ChangePalette mutates all
// derived images in place so an Archive must not be rendered from while
// another goroutine changes its palette.
type Archive struct {
	Records []*Record

	data     []byte
	palettes map[int]color.Palette
	active   int
	logger   zerolog.Logger
}

// Option configures an Archive during Decode.
type Option func(*Archive)

// WithPalette registers palette p under id.
func WithPalette(id int, p color.Palette) Option {
	return func(a *Archive) {
		a.palettes[id] = p
	}
}

// WithPalettes registers every palette in m.
func WithPalettes(m map[int]color.Palette) Option {
	return func(a *Archive) {
		for id, p := range m {
			a.palettes[id] = p
		}
	}
}

// WithActivePalette selects the palette images are first decoded under.
// The default is palette 0.
func WithActivePalette(id int) Option {
	return func(a *Archive) {
		a.active = id
	}
}

// WithLogger sets the logger used for size mismatch diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// Decode parses a GRAPHICS archive held in b. The slice is retained.
func Decode(b []byte, opts ...Option) (*Archive, error) {
	a := &Archive{
		data:     b,
		palettes: make(map[int]color.Palette),
		logger:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(a)
	}

	active, ok := a.palettes[a.active]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoPalette, a.active)
	}

	d := decoder{
		r:      bytes.NewReader(b),
		logger: a.logger,
	}
	if err := d.readTables(); err != nil {
		return nil, formatError(err)
	}

	a.Records = make([]*Record, numRecords)
	for i := range a.Records {
		r, err := d.readRecord(i)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, formatError(err))
		}
		a.Records[i] = r
	}

	for i, r := range a.Records {
		p, skip := active, 0
		switch i {
		case AltPaletteRecord:
			if alt, ok := a.palettes[altRecordPalette]; ok {
				p = alt
			}
			skip = 1
		case PaletteRecord:
			skip = 1
		}
		if err := d.loadImages(r, p, skip); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, formatError(err))
		}
	}

	for id, i := range map[int]int{EmbeddedPalette: PaletteRecord, AltEmbeddedPalette: AltPaletteRecord} {
		if a.Records[i].Empty() {
			continue
		}
		p, err := a.Palette(i)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		a.palettes[id] = p
	}

	return a, nil
}

// Palette reinterprets the first image of record i as an embedded palette.
func (a *Archive) Palette(i int) (color.Palette, error) {
	if i < 0 || i >= len(a.Records) || a.Records[i].Empty() {
		return nil, fmt.Errorf("%w: record %d", ErrNoImage, i)
	}
	r := bytes.NewReader(a.data)
	if _, err := r.Seek(int64(a.Records[i].Offset)+recordHeaderSize, io.SeekStart); err != nil {
		return nil, formatError(err)
	}
	var hdr [imageHeaderSize]byte
	if err := readFull(r, hdr[:]); err != nil {
		return nil, formatError(err)
	}
	if n := int(hdr[0]) * int(hdr[1]); n != paletteBytes {
		return nil, fmt.Errorf("%w: image is %d bytes, not a palette", ErrFormat, n)
	}
	b := make([]byte, paletteBytes)
	if err := readFull(r, b); err != nil {
		return nil, formatError(err)
	}
	return NewPalette(b)
}

// ActivePalette returns the id of the palette images are derived under.
func (a *Archive) ActivePalette() int {
	return a.active
}

// HasPalette reports whether a palette is registered under id.
func (a *Archive) HasPalette(id int) bool {
	_, ok := a.palettes[id]
	return ok
}

// ChangePalette re-derives every masked image under palette id. It does
// nothing if id is already active. Raw bitmaps are never modified.
func (a *Archive) ChangePalette(id int) error {
	if id == a.active {
		return nil
	}
	p, ok := a.palettes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoPalette, id)
	}
	a.active = id
	for _, r := range a.Records {
		r.setPalette(p)
	}
	return nil
}

// Colour returns entry i of the active palette.
func (a *Archive) Colour(i int) color.RGBA {
	p := a.palettes[a.active]
	if i < 0 || i >= len(p) {
		return color.RGBA{A: 0xff}
	}
	return color.RGBAModel.Convert(p[i]).(color.RGBA)
}

// Image returns masked image img of record rec.
func (a *Archive) Image(rec, img int) (*image.NRGBA, error) {
	if rec < 0 || rec >= len(a.Records) {
		return nil, fmt.Errorf("%w: record %d", ErrNoImage, rec)
	}
	m, err := a.Records[rec].Image(img)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rec, err)
	}
	return m, nil
}

// Part places one archive image within a composite.
type Part struct {
	X, Y   int
	Record int
	Image  int
}

// Composite pastes each part onto a transparent canvas of the given size,
// later parts drawn over earlier ones.
func (a *Archive) Composite(size image.Point, parts []Part) (*image.NRGBA, error) {
	m := image.NewNRGBA(image.Rectangle{Max: size})
	for _, p := range parts {
		src, err := a.Image(p.Record, p.Image)
		if err != nil {
			return nil, err
		}
		draw.Draw(m, src.Bounds().Add(image.Pt(p.X, p.Y)), src, image.Point{}, draw.Over)
	}
	return m, nil
}

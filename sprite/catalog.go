package sprite

import (
	"errors"
	"fmt"
	"image"

	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
)

// Key identifies a catalog entry.
type Key struct {
	Type    int16
	SubType int16
}

// Catalog resolves an object's type and subtype to a drawable.
type Catalog interface {
	Lookup(typ, subType int16) (Drawable, bool)
}

// Table is an in-memory Catalog.
type Table struct {
	sprites map[Key]Drawable
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		sprites: make(map[Key]Drawable),
	}
}

// Add sets the drawable for typ and subType.
func (t *Table) Add(typ, subType int16, d Drawable) {
	t.sprites[Key{typ, subType}] = d
}

// Lookup implements Catalog.
func (t *Table) Lookup(typ, subType int16) (Drawable, bool) {
	d, ok := t.sprites[Key{typ, subType}]
	return d, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.sprites)
}

// Role says where a frame's image is used.
type Role int

const (
	RolePrimary Role = iota
	RoleContents
)

// Frame describes one image of a sprite in terms of archive images.
type Frame struct {
	Role   Role
	Key    int16
	Offset image.Point

	// Size of the composite canvas. If zero it is the bounding box of
	// the parts.
	Size image.Point

	// Alpha scales the frame's opacity; 0 and 255 are both opaque.
	Alpha uint8

	Parts []graphics.Part
}

// Definition is the catalog data for one type and subtype, independent of
// any palette.
type Definition struct {
	Type        int16
	SubType     int16
	Kind        Kind
	Field       level.Field
	Label       bool
	LabelOffset image.Point
	Frames      []Frame
}

// Images is the subset of an archive needed to build sprites.
type Images interface {
	Image(rec, img int) (*image.NRGBA, error)
	Composite(size image.Point, parts []graphics.Part) (*image.NRGBA, error)
}

func (f *Frame) image(src Images) (image.Image, error) {
	if len(f.Parts) == 0 {
		return nil, fmt.Errorf("%w: frame %d has no parts", ErrNoImage, f.Key)
	}

	var m image.Image
	if p := f.Parts[0]; len(f.Parts) == 1 && f.Size == (image.Point{}) && p.X == 0 && p.Y == 0 {
		img, err := src.Image(p.Record, p.Image)
		if err != nil {
			return nil, err
		}
		m = img
	} else {
		size := f.Size
		if size == (image.Point{}) {
			for _, p := range f.Parts {
				img, err := src.Image(p.Record, p.Image)
				if err != nil {
					return nil, err
				}
				size.X = max(size.X, p.X+img.Bounds().Dx())
				size.Y = max(size.Y, p.Y+img.Bounds().Dy())
			}
		}
		img, err := src.Composite(size, f.Parts)
		if err != nil {
			return nil, err
		}
		m = img
	}

	if f.Alpha != 0 && f.Alpha != 0xff {
		m = graphics.Semitransparent(m, f.Alpha)
	}
	return m, nil
}

// Build materialises definitions against the images currently derived by
// src. Tables must be rebuilt after the archive's palette changes.
//
// A definition whose images cannot be resolved is left out of the table so
// objects of that type fall back to a placeholder. The returned table is
// always usable; the error, if any, joins one error per skipped definition.
func Build(defs []Definition, src Images) (*Table, error) {
	t := NewTable()
	var errs []error
	for _, def := range defs {
		s, err := def.build(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("sprite %d:%d: %w", def.Type, def.SubType, err))
			continue
		}
		t.Add(def.Type, def.SubType, s)
	}
	return t, errors.Join(errs...)
}

func (def *Definition) build(src Images) (*Sprite, error) {
	s := &Sprite{
		Kind:        def.Kind,
		Field:       def.Field,
		Label:       def.Label,
		LabelOffset: def.LabelOffset,
	}
	if def.Kind == KindSelected {
		s.Images = make(map[int16]image.Image)
		s.Offsets = make(map[int16]image.Point)
	}
	for _, f := range def.Frames {
		img, err := f.image(src)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Role == RoleContents:
			s.Contents = img
		case def.Kind == KindSelected:
			s.Images[f.Key] = img
			s.Offsets[f.Key] = f.Offset
		default:
			s.Image = img
			s.Offset = f.Offset
		}
	}
	return s, nil
}

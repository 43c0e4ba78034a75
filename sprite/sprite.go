// Package sprite draws level objects. A Sprite is one of a fixed image, an
// image selected by an object field, or a string from the level's string
// pool, optionally with secondary contents imagery and a numeric label.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
)

// Info values strictly between 0 and maxLabel are drawn as labels.
const maxLabel = 90

// ErrNoImage is returned when a selected sprite has no image for the value
// of its field.
var ErrNoImage = errors.New("sprite: no image for key")

// Kind tags how a Sprite chooses what to draw.
type Kind int

const (
	KindFixed Kind = iota
	KindSelected
	KindText
)

var kindNames = []string{"fixed", "selected", "text"}

// ParseKind converts a kind name as used in sprite catalogs.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Context carries per-level state needed while drawing.
type Context struct {
	Map        *level.Map
	HideLabels bool
}

// Drawable is anything that can draw a level object.
type Drawable interface {
	Draw(dst draw.Image, o *level.Object, ctx *Context) error
}

// Sprite is the catalog's drawable.
type Sprite struct {
	Kind Kind

	// Image and Offset are used by KindFixed; Offset is also the default
	// offset for KindSelected.
	Image  image.Image
	Offset image.Point

	// Field selects the key into Images and Offsets for KindSelected.
	Field   level.Field
	Images  map[int16]image.Image
	Offsets map[int16]image.Point

	// Contents is drawn directly above the primary image.
	Contents image.Image

	// Label draws the object's info value as a number.
	Label       bool
	LabelOffset image.Point

	// Color of KindText strings, white if nil.
	Color color.Color
}

func paste(dst draw.Image, src image.Image, pt image.Point) {
	b := src.Bounds()
	draw.Draw(dst, b.Sub(b.Min).Add(pt), src, b.Min, draw.Over)
}

// Draw draws o onto dst.
func (s *Sprite) Draw(dst draw.Image, o *level.Object, ctx *Context) error {
	pos := image.Pt(int(o.X), int(o.Y))

	var img image.Image
	off := s.Offset
	switch s.Kind {
	case KindFixed:
		img = s.Image
	case KindSelected:
		key := o.Value(s.Field)
		var ok bool
		if img, ok = s.Images[key]; !ok {
			return fmt.Errorf("%w: %s %d", ErrNoImage, s.Field, key)
		}
		if d, ok := s.Offsets[key]; ok {
			off = d
		}
	case KindText:
		if err := s.drawText(dst, pos.Add(off), o, ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("sprite: unknown kind %s", s.Kind)
	}

	if img != nil {
		paste(dst, img, pos.Add(off))
		if s.Contents != nil {
			paste(dst, s.Contents, pos.Add(off).Sub(image.Pt(0, s.Contents.Bounds().Dy())))
		}
	}

	if s.Label && !ctx.HideLabels && o.Info > 0 && o.Info < maxLabel {
		graphics.DrawOutlinedString(dst, pos.Add(s.LabelOffset), strconv.Itoa(int(o.Info)), color.White, color.Black)
	}

	return nil
}

func (s *Sprite) drawText(dst draw.Image, pt image.Point, o *level.Object, ctx *Context) error {
	if ctx.Map == nil {
		return errors.New("sprite: no level for text")
	}
	str, err := ctx.Map.Lookup(o.StringRef)
	if err != nil {
		return err
	}
	c := s.Color
	if c == nil {
		c = color.White
	}
	lh := graphics.MeasureString("").Y
	for i, line := range strings.Split(strings.ReplaceAll(str, "\r", ""), "\n") {
		graphics.DrawOutlinedString(dst, pt.Add(image.Pt(0, i*lh)), line, c, color.Black)
	}
	return nil
}

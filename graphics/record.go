package graphics

import (
	"fmt"
	"image"
	"image/color"
)

// RecordHeader is the fixed header at the start of every non-empty record.
type RecordHeader struct {
	Count  uint8 // number of images minus one
	Fields [4]uint16
	Flags  [3]uint8
}

// Record is one slot of the archive. An empty slot has a zero Offset and no
// images.
type Record struct {
	Offset uint32
	Size   uint16
	Header RecordHeader

	// Leftover is the number of declared bytes not consumed while loading
	// the images; negative if loading read past the end of the record.
	Leftover int

	flags  []uint8
	raw    []*image.Paletted
	images []*image.NRGBA
}

// Empty reports whether the slot holds no record.
func (r *Record) Empty() bool {
	return r.Offset == 0
}

// NumImages is the number of images declared by the record header.
func (r *Record) NumImages() int {
	if r.Empty() {
		return 0
	}
	return int(r.Header.Count) + 1
}

// Len returns the number of decoded images. Skipped and zero-sized images
// are not counted so it can be less than NumImages.
func (r *Record) Len() int {
	return len(r.images)
}

// Image returns the masked RGBA version of image i.
func (r *Record) Image(i int) (*image.NRGBA, error) {
	if i < 0 || i >= len(r.images) {
		return nil, fmt.Errorf("%w: image %d of %d", ErrNoImage, i, len(r.images))
	}
	return r.images[i], nil
}

// Raw returns the indexed bitmap of image i under the palette it was last
// derived with. The pixel data must not be modified.
func (r *Record) Raw(i int) (*image.Paletted, error) {
	if i < 0 || i >= len(r.raw) {
		return nil, fmt.Errorf("%w: image %d of %d", ErrNoImage, i, len(r.raw))
	}
	return r.raw[i], nil
}

// Flags returns the flags byte stored alongside image i.
func (r *Record) Flags(i int) uint8 {
	if i < 0 || i >= len(r.flags) {
		return 0
	}
	return r.flags[i]
}

func (r *Record) add(pix []byte, width, height int, flags uint8, p color.Palette) {
	m := &image.Paletted{
		Pix:     pix,
		Stride:  width,
		Rect:    image.Rect(0, 0, width, height),
		Palette: p,
	}
	r.raw = append(r.raw, m)
	r.images = append(r.images, mask(m))
	r.flags = append(r.flags, flags)
}

// setPalette swaps the palette on every raw bitmap without touching the
// pixel data and re-derives the masked images.
func (r *Record) setPalette(p color.Palette) {
	for i, m := range r.raw {
		dup := *m
		dup.Palette = p
		r.raw[i] = &dup
		r.images[i] = mask(&dup)
	}
}

/*
Package graphics implements a decoder for the Xargon GRAPHICS archive.

The archive starts with two tables describing 128 record slots; 128
little-endian 32-bit offsets followed by 128 little-endian 16-bit sizes. A
slot with a zero offset is empty. Each record begins with a 12 byte header,
the first byte of which is one less than the number of images in the record,
followed by four 16-bit and three 8-bit fields of unknown purpose.

Every image is a width, height and flags byte followed by width*height
palette indices. There is no compression.

Images are held twice; the raw indexed bitmap exactly as read from the
archive and an RGBA copy where palette index 0 is fully transparent. Changing
the palette re-derives the RGBA copies from the raw bitmaps.
*/
package graphics

const (
	numRecords       = 128
	tableSize        = numRecords*4 + numRecords*2
	recordHeaderSize = 12
	imageHeaderSize  = 3
	paletteColors    = 256
	paletteBytes     = paletteColors * 3
)

// Records holding an embedded palette as their first image.
const (
	PaletteRecord    = 5
	AltPaletteRecord = 53
)

// Palette identifiers registered for the embedded palettes.
const (
	EmbeddedPalette    = -1
	AltEmbeddedPalette = -2
)

// AltPaletteRecord is always decoded under this palette.
const altRecordPalette = 3

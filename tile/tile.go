/*
Package tile implements a decoder for the Xargon TILES file, which maps the
tile codes used in level files to images in the GRAPHICS archive.

The file is a sequence of variable length records with no count prefix,
read until the end of the file. Each record is a little-endian 16-bit tile
code, 16-bit graphics index and 16-bit flags value followed by a length
prefixed name.

A graphics index selects record index/256 - 64 of the archive and image
index%256 within it.
*/
package tile

const (
	// Tile codes at or above Bias are looked up as code - Bias.
	Bias = 0xc000

	recordBias = 64

	// Width and Height are the pixel dimensions of one map tile.
	Width  = 16
	Height = Width
)

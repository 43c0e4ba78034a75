/*
Package level implements a decoder for Xargon level (map) files.

A level file starts with a grid of 64 by 128 little-endian 16-bit tile
codes. The grid is stored height first so the tile at column x, row y is at
index x*64 + y. A 16-bit object count follows along with that many object
records of sixteen signed 16-bit fields each. After the objects is a 97 byte
region whose first byte is the level's internal number, then a pool of
strings, each a 16-bit length, the string bytes and a separator byte, until
the end of the file.

Strings are not referenced by index. Instead every object with a positive
string reference is collected and sorted in descending order, and the
position of a reference in that order is its index into the pool.
*/
package level

const (
	// Width and Height are the grid dimensions in tiles.
	Width  = 128
	Height = 64

	gridSize = Width * Height
	auxSize  = 97
)

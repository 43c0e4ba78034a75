package tile_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerkerX/xargonmapper/tile"
)

func entry(b *bytes.Buffer, code, index, flags uint16, name string) {
	binary.Write(b, binary.LittleEndian, []uint16{code, index, flags})
	b.WriteByte(byte(len(name)))
	b.WriteString(name)
}

func testTable(t *testing.T) *tile.Table {
	t.Helper()
	b := new(bytes.Buffer)
	entry(b, 0, 0x4000, 0, "")
	entry(b, 1, 0x4203, 1, "WALL")
	entry(b, 0x123, 0x5aff, 2, "DOOR_TOP")
	tbl, err := tile.Decode(b)
	require.NoError(t, err)
	return tbl
}

func TestDecode(t *testing.T) {
	tbl := testTable(t)
	require.Len(t, tbl.Entries, 3)
	assert.Equal(t, tile.Entry{Code: 1, Index: 0x4203, Flags: 1, Name: "WALL"}, tbl.Entries[1])
}

func TestResolve(t *testing.T) {
	tbl := testTable(t)

	for _, tc := range []struct {
		code          uint16
		record, image int
	}{
		{0, 0, 0},
		{1, 2, 3},
		{0x123, 26, 255},
		{0xc000, 0, 0},
		{0xc001, 2, 3},
	} {
		record, image, err := tbl.Resolve(tc.code)
		require.NoError(t, err, "%#04x", tc.code)
		assert.Equal(t, tc.record, record, "%#04x", tc.code)
		assert.Equal(t, tc.image, image, "%#04x", tc.code)
	}
}

func TestResolveBiasBoundary(t *testing.T) {
	tbl := testTable(t)

	r0, i0, err := tbl.Resolve(0)
	require.NoError(t, err)
	r1, i1, err := tbl.Resolve(0xc000)
	require.NoError(t, err)
	assert.Equal(t, r0, r1)
	assert.Equal(t, i0, i1)
}

func TestResolveNotFound(t *testing.T) {
	tbl := testTable(t)

	for _, code := range []uint16{2, 0xbfff, 0xc002, 0xffff} {
		record, image, err := tbl.Resolve(code)
		require.ErrorIs(t, err, tile.ErrNotFound)
		assert.Zero(t, record)
		assert.Zero(t, image)
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := new(bytes.Buffer)
	entry(b, 1, 0x4000, 0, "NAME")
	full := b.Bytes()

	for _, n := range []int{3, 7, len(full) - 1} {
		_, err := tile.Decode(bytes.NewReader(full[:n]))
		require.ErrorIs(t, err, tile.ErrFormat, "length %d", n)
	}

	tbl, err := tile.Decode(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, tbl.Entries)
}

package render_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
	"github.com/zerkerX/xargonmapper/render"
	"github.com/zerkerX/xargonmapper/sprite"
	"github.com/zerkerX/xargonmapper/tile"
)

var (
	background = color.RGBA{1, 2, 3, 0xff}
	red        = color.RGBA{0xff, 0, 0, 0xff}
	blue       = color.RGBA{0, 0, 0xff, 0xff}
)

func testPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 0xff}
	}
	p[1] = red
	p[2] = blue
	p[250] = background
	return p
}

// testArchive has a transparent tile in record 0 and an opaque red tile in
// record 1.
func testArchive(t *testing.T) *graphics.Archive {
	t.Helper()

	body := func(index byte) []byte {
		b := new(bytes.Buffer)
		b.Write(make([]byte, 12))
		b.Write([]byte{16, 16, 0})
		b.Write(bytes.Repeat([]byte{index}, 16*16))
		return b.Bytes()
	}

	var offsets [128]uint32
	var sizes [128]uint16
	var data bytes.Buffer
	for i, index := range []byte{0, 1} {
		rec := body(index)
		offsets[i] = uint32(128*4 + 128*2 + data.Len())
		sizes[i] = uint16(len(rec))
		data.Write(rec)
	}

	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, offsets)
	binary.Write(b, binary.LittleEndian, sizes)
	b.Write(data.Bytes())

	a, err := graphics.Decode(b.Bytes(), graphics.WithPalette(0, testPalette()))
	require.NoError(t, err)
	return a
}

type testEntry struct {
	code, index uint16
}

func testTiles(t *testing.T, entries ...testEntry) *tile.Table {
	t.Helper()

	b := new(bytes.Buffer)
	for _, e := range entries {
		binary.Write(b, binary.LittleEndian, []uint16{e.code, e.index, 0})
		b.WriteByte(0)
	}
	tt, err := tile.Decode(b)
	require.NoError(t, err)
	return tt
}

// defaultTiles maps code 0 to the transparent tile and code 1 to the red
// tile.
func defaultTiles(t *testing.T) *tile.Table {
	return testTiles(t, testEntry{0, 64 << 8}, testEntry{1, 65 << 8})
}

func newMap(objects ...level.Object) *level.Map {
	m := &level.Map{Name: "BOARD_01"}
	for _, o := range objects {
		m.AddObject(o)
	}
	return m
}

func fixed(c color.Color, size int) *sprite.Sprite {
	m := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return &sprite.Sprite{Kind: sprite.KindFixed, Image: m}
}

type drawFunc func(draw.Image, *level.Object, *sprite.Context) error

func (f drawFunc) Draw(dst draw.Image, o *level.Object, ctx *sprite.Context) error {
	return f(dst, o, ctx)
}

func TestRenderBackground(t *testing.T) {
	r := render.New(testArchive(t), defaultTiles(t), nil)

	m, err := r.Render(newMap())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 2048, 1024), m.Bounds())
	assert.Equal(t, background, m.RGBAAt(0, 0))
	assert.Equal(t, background, m.RGBAAt(2047, 1023))
}

func TestRenderTiles(t *testing.T) {
	r := render.New(testArchive(t), defaultTiles(t), nil)

	m := newMap()
	m.Tiles[3*level.Height+2] = 1

	out, err := r.Render(m)
	require.NoError(t, err)

	assert.Equal(t, red, out.RGBAAt(3*16, 2*16))
	assert.Equal(t, red, out.RGBAAt(3*16+15, 2*16+15))
	assert.Equal(t, background, out.RGBAAt(3*16+16, 2*16))
	assert.Equal(t, background, out.RGBAAt(3*16, 2*16+16))
}

func TestRenderUnknownTile(t *testing.T) {
	r := render.New(testArchive(t), defaultTiles(t), nil)

	m := newMap()
	m.Tiles[100] = 0x1234

	_, err := r.Render(m)
	assert.True(t, errors.Is(err, tile.ErrNotFound))
}

func TestRenderMissingTileImage(t *testing.T) {
	tiles := testTiles(t, testEntry{0, 64 << 8}, testEntry{2, 70 << 8})
	r := render.New(testArchive(t), tiles, nil)

	m := newMap()
	m.Tiles[0] = 2

	_, err := r.Render(m)
	assert.True(t, errors.Is(err, graphics.ErrNoImage))
}

func TestRenderDrawOrder(t *testing.T) {
	catalog := sprite.NewTable()
	catalog.Add(1, 0, fixed(red, 4))
	catalog.Add(level.TypeLabel, 0, fixed(blue, 4))

	r := render.New(testArchive(t), defaultTiles(t), catalog)

	// Text objects come first in the file but are drawn last.
	m := newMap(
		level.Object{Type: level.TypeLabel, X: 40, Y: 40},
		level.Object{Type: 1, X: 40, Y: 40},
	)

	out, err := r.Render(m)
	require.NoError(t, err)
	assert.Equal(t, blue, out.RGBAAt(41, 41))
}

func TestRenderObjectErrors(t *testing.T) {
	catalog := sprite.NewTable()
	catalog.Add(1, 0, fixed(red, 2))
	catalog.Add(2, 0, drawFunc(func(draw.Image, *level.Object, *sprite.Context) error {
		panic("broken")
	}))
	catalog.Add(3, 0, drawFunc(func(draw.Image, *level.Object, *sprite.Context) error {
		return errors.New("failed")
	}))

	buf := new(bytes.Buffer)
	r := render.New(testArchive(t), defaultTiles(t), catalog, render.WithLogger(zerolog.New(buf)))

	m := newMap(
		level.Object{Type: 2, X: 10, Y: 10, Appearance: 7},
		level.Object{Type: 3, X: 20, Y: 20},
		level.Object{Type: 1, X: 30, Y: 30},
	)

	out, err := r.Render(m)
	require.NoError(t, err)

	assert.Equal(t, red, out.RGBAAt(30, 30))
	assert.Contains(t, buf.String(), `"type":2`)
	assert.Contains(t, buf.String(), `"appearance":7`)
	assert.Contains(t, buf.String(), "broken")
	assert.Contains(t, buf.String(), `"type":3`)
	assert.Contains(t, buf.String(), "failed")
	assert.NotContains(t, buf.String(), `"type":1,`)
}

func TestRenderPlaceholder(t *testing.T) {
	var calls []image.Point
	placeholder := func(typ, subType, width, height int) image.Image {
		calls = append(calls, image.Pt(width, height))
		return graphics.DebugImage(typ, subType, width, height)
	}

	r := render.New(testArchive(t), defaultTiles(t), sprite.NewTable(), render.WithPlaceholder(placeholder))

	m := newMap(
		level.Object{Type: 99, SubType: 4, X: 0, Y: 0, Width: 32, Height: 32},
		level.Object{Type: 99, SubType: 4, X: 100, Y: 100, Width: 64, Height: 64},
	)

	out, err := r.Render(m)
	require.NoError(t, err)

	assert.Equal(t, []image.Point{{32, 32}}, calls)
	assert.NotEqual(t, background, out.RGBAAt(101, 101))
}

func TestPreprocessDoorSwitch(t *testing.T) {
	m := newMap(
		level.Object{Type: level.TypeDoor, X: 64, Y: 64, Info: 5},
		level.Object{Type: level.TypeSwitch, X: 64, Y: 64, Info: 5},
	)

	render.Preprocess(m)

	door, sw := m.Objects[0], m.Objects[1]
	assert.Equal(t, int16(64), door.Y)
	assert.Equal(t, int16(5), door.Info)
	assert.Equal(t, int16(72), sw.Y)
	assert.Equal(t, int16(0), sw.Info)
}

func TestPreprocessStackedSwitches(t *testing.T) {
	m := newMap(
		level.Object{Type: level.TypeSwitch, X: 16, Y: 16, Info: 1},
		level.Object{Type: level.TypeSwitch, X: 16, Y: 16, Info: 2},
		level.Object{Type: level.TypeSwitch, X: 16, Y: 16, Info: 3},
		level.Object{Type: level.TypeSwitch, X: 32, Y: 16, Info: 4},
	)

	render.Preprocess(m)

	var ys []int16
	for _, o := range m.Objects {
		ys = append(ys, o.Y)
	}
	assert.Equal(t, []int16{16, 24, 32, 16}, ys)
	for i, o := range m.Objects {
		assert.Equal(t, int16(i+1), o.Info)
	}
}

// refMap returns a map with n text objects referencing strings 1 to n.
// The sorted reference table is n, n-1, ..., 1 and string i of the pool is
// "s<i>".
func refMap(n int) *level.Map {
	m := newMap()
	for i := 1; i <= n; i++ {
		m.AddObject(level.Object{Type: level.TypeLabel, StringRef: int16(i)})
		m.Strings = append(m.Strings, fmt.Sprintf("s%d", i-1))
	}
	return m
}

func TestApplyFixups(t *testing.T) {
	t.Run("episode 1 story", func(t *testing.T) {
		m := refMap(125)
		m.Name = "story"
		orig := m.Refs()
		pool := append([]string{}, m.Strings...)

		render.ApplyFixups(m, 1)

		refs := m.Refs()
		require.Len(t, refs, 125)
		assert.Equal(t, orig[:81], refs[:81])
		assert.Equal(t, []int16{orig[117], orig[118], orig[119], orig[82], orig[81], orig[84], orig[83], orig[116]}, refs[81:89])
		assert.Equal(t, orig[85:116], refs[89:120])
		assert.Equal(t, orig[120:], refs[120:])
		assert.Equal(t, pool, m.Strings)

		// The reference that sorted to position 117 now reads pool entry 81.
		got, err := m.Lookup(orig[117])
		require.NoError(t, err)
		assert.Equal(t, "s81", got)
		got, err = m.Lookup(orig[81])
		require.NoError(t, err)
		assert.Equal(t, "s85", got)
	})

	t.Run("episode 2 ending", func(t *testing.T) {
		m := refMap(11)
		m.Name = "BOARD_32"

		render.ApplyFixups(m, 2)

		assert.Equal(t, []int16{11, 10, 9, 8, 7, 6, 5, 4, 1, 3, 2}, m.Refs())
		got, err := m.Lookup(1)
		require.NoError(t, err)
		assert.Equal(t, "s8", got)
		got, err = m.Lookup(3)
		require.NoError(t, err)
		assert.Equal(t, "s9", got)
	})

	t.Run("episode 3 ending", func(t *testing.T) {
		m := newMap()
		m.Name = "BOARD_32"

		render.ApplyFixups(m, 3)

		require.Len(t, m.Sprites, 1)
		o := m.Sprites[0]
		assert.Equal(t, level.Object{Type: 1000, X: 48, Y: 240, Width: 160, Height: 160}, *o)
	})

	t.Run("other levels", func(t *testing.T) {
		m := refMap(2)
		m.Name = "BOARD_32"

		render.ApplyFixups(m, 1)

		assert.Equal(t, []int16{2, 1}, m.Refs())
		assert.Len(t, m.Objects, 2)
	})

	t.Run("short story", func(t *testing.T) {
		m := refMap(10)
		m.Name = "STORY"

		render.ApplyFixups(m, 1)

		assert.Equal(t, []int16{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, m.Refs())
	})
}

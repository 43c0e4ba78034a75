package graphics_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zerkerX/xargonmapper/graphics"
)

func TestSemitransparent(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 0xff})
	m.SetNRGBA(1, 0, color.NRGBA{1, 2, 3, 0})

	out := graphics.Semitransparent(m, 128)
	assert.Equal(t, color.NRGBA{200, 100, 50, 128}, out.NRGBAAt(0, 0))
	assert.Equal(t, uint8(0), out.NRGBAAt(1, 0).A)
	// Source untouched.
	assert.Equal(t, uint8(0xff), m.NRGBAAt(0, 0).A)
}

func TestSemitransparentRounds(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	m.SetNRGBA(0, 0, color.NRGBA{A: 200})
	m.SetNRGBA(1, 0, color.NRGBA{A: 0xff})
	m.SetNRGBA(2, 0, color.NRGBA{A: 1})

	out := graphics.Semitransparent(m, 200)
	assert.Equal(t, uint8(157), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(200), out.NRGBAAt(1, 0).A)
	assert.Equal(t, uint8(1), out.NRGBAAt(2, 0).A)
}

func TestDrawOutlinedStringIsCrisp(t *testing.T) {
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}

	for _, s := range []string{"1", "9", "89"} {
		m := image.NewRGBA(image.Rect(0, 0, 32, 32))
		graphics.DrawOutlinedString(m, image.Pt(4, 4), s, white, black)

		var fg, bg, other int
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				switch c := m.RGBAAt(x, y); c {
				case white:
					fg++
				case black:
					bg++
				case color.RGBA{}:
				default:
					other++
				}
			}
		}
		assert.Positive(t, fg, s)
		assert.Positive(t, bg, s)
		assert.Zero(t, other, s)
	}
}

func TestDebugImage(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height int
		want          image.Rectangle
	}{
		{"small", 16, 16, image.Rect(0, 0, 48, 16)},
		{"zero", 0, 0, image.Rect(0, 0, 48, 16)},
		{"large", 64, 40, image.Rect(0, 0, 64, 40)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := graphics.DebugImage(99, 4, tc.width, tc.height)
			assert.Equal(t, tc.want, m.Bounds())

			var white int
			for i := 0; i < len(m.Pix); i += 4 {
				if m.Pix[i] == 0xff && m.Pix[i+3] == 0xff {
					white++
				}
			}
			assert.Positive(t, white, "label not drawn")
		})
	}

	m := graphics.DebugImage(1, 2, 16, 16)
	assert.Equal(t, color.NRGBA{64, 64, 64, 128}, m.NRGBAAt(0, 0))
	assert.Equal(t, uint8(0), m.NRGBAAt(47, 0).A)
}

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea(t *testing.T) {
	assert.Equal(t, 240000.0, XYWH(0, 0, 400, 600).Area())
	assert.Equal(t, 0.0, Rect{}.Area())

	// Malformed host data: a negative extent yields the literal product.
	malformed := Rect{Min: Pt(10, 0), Max: Pt(0, 5)}
	assert.Equal(t, -50.0, malformed.Area())
	assert.True(t, malformed.Empty())
}

func TestIntersect_Overlap(t *testing.T) {
	a := XYWH(0, 0, 100, 100)
	b := XYWH(50, 25, 100, 100)

	got := a.Intersect(b)
	assert.Equal(t, Rect{Min: Pt(50, 25), Max: Pt(100, 100)}, got)
	assert.Equal(t, 50.0*75.0, got.Area())
}

func TestIntersect_DisjointIsEmpty(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	b := XYWH(20, 20, 10, 10)

	got := a.Intersect(b)
	assert.Equal(t, Rect{}, got)
	assert.Zero(t, got.Area())
	assert.True(t, got.Empty())
}

func TestIntersect_TouchingEdgesHaveZeroArea(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	b := XYWH(10, 0, 10, 10)

	got := a.Intersect(b)
	assert.Zero(t, got.Area())
	assert.True(t, got.Empty())
}

func TestIntersect_CommutativeAndContained(t *testing.T) {
	rects := []Rect{
		XYWH(0, 0, 1440, 900),
		XYWH(720, 0, 720, 438),
		XYWH(100, 100, 50, 900),
		XYWH(-20, 300, 200, 10),
		XYWH(2000, 2000, 5, 5),
		{},
	}

	for _, a := range rects {
		for _, b := range rects {
			ab := a.Intersect(b)
			ba := b.Intersect(a)
			require.Equal(t, ab, ba, "intersect(%v, %v)", a, b)
			if ab.Empty() {
				continue
			}
			for _, r := range []Rect{a, b} {
				assert.GreaterOrEqual(t, ab.Min.X, r.Min.X)
				assert.GreaterOrEqual(t, ab.Min.Y, r.Min.Y)
				assert.LessOrEqual(t, ab.Max.X, r.Max.X)
				assert.LessOrEqual(t, ab.Max.Y, r.Max.Y)
			}
		}
	}
}

func TestInsetAndContains(t *testing.T) {
	r := XYWH(0, 0, 900, 900).Inset(100, 100)
	assert.Equal(t, XYWH(100, 100, 700, 700), r)
	assert.True(t, r.Contains(Pt(100, 100)))
	assert.False(t, r.Contains(Pt(800, 500)))
}

func TestEqAndString(t *testing.T) {
	assert.True(t, XYWH(0, 0, 10, 10).Eq(XYWH(0.2, 0, 10, 10), 0.5))
	assert.False(t, XYWH(0, 0, 10, 10).Eq(XYWH(2, 0, 10, 10), 0.5))
	assert.Equal(t, "720x438+0+462", XYWH(0, 462, 720, 438).String())
}

func TestTranslate(t *testing.T) {
	got := XYWH(0, 312, 400, 288).Translate(1440, 0)
	assert.Equal(t, XYWH(1440, 312, 400, 288), got)
	assert.Equal(t, 400.0*288.0, got.Area())
}

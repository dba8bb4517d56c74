package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_Table(t *testing.T) {
	want := map[Region][4]Region{
		//           Left         Right        Up          Down
		RightTop:    {LeftTop, LeftTop, RightHalf, RightBottom},
		RightBottom: {LeftBottom, LeftBottom, RightTop, RightBottom},
		LeftBottom:  {RightBottom, RightBottom, LeftTop, LeftBottom},
		LeftTop:     {RightTop, RightTop, LeftHalf, LeftBottom},
		RightHalf:   {LeftHalf, LeftHalf, FullScreen, RightBottom},
		LeftHalf:    {RightHalf, RightHalf, FullScreen, LeftBottom},
		FullScreen:  {LeftHalf, RightHalf, FullScreen, None},
		None:        {LeftHalf, RightHalf, FullScreen, None},
	}

	assert.Len(t, want, len(Regions()))
	for _, r := range Regions() {
		row, ok := want[r]
		if !assert.True(t, ok, "missing expectation for %s", r) {
			continue
		}
		for i, d := range Directions() {
			assert.Equal(t, row[i], Next(r, d), "Next(%s, %s)", r, d)
		}
	}
}

func TestNext_LeftHalfUpPromotesToFullScreen(t *testing.T) {
	assert.Equal(t, FullScreen, Next(LeftHalf, Up))
}

func TestNext_FullScreenUpIsFixedPoint(t *testing.T) {
	r := FullScreen
	for i := 0; i < 3; i++ {
		r = Next(r, Up)
	}
	assert.Equal(t, FullScreen, r)
}

func TestNext_RoundTrips(t *testing.T) {
	assert.Equal(t, LeftTop, Next(Next(LeftTop, Right), Left))
	assert.Equal(t, RightBottom, Next(Next(RightBottom, Left), Right))
	assert.Equal(t, LeftHalf, Next(Next(LeftHalf, Right), Left))
}

func TestNext_DownNeverPromotes(t *testing.T) {
	rank := map[Region]int{
		None:        0,
		RightTop:    1,
		RightBottom: 1,
		LeftBottom:  1,
		LeftTop:     1,
		RightHalf:   2,
		LeftHalf:    2,
		FullScreen:  3,
	}
	for _, r := range Regions() {
		next := Next(r, Down)
		if r == FullScreen {
			assert.Equal(t, None, next)
			continue
		}
		assert.LessOrEqual(t, rank[next], rank[r], "Down from %s went to %s", r, next)
	}
}

func TestNext_OutOfRangeInputs(t *testing.T) {
	assert.Equal(t, LeftHalf, Next(Region(42), Left))
	assert.Equal(t, LeftHalf, Next(None, Direction(-1)))
}

func TestParseRegionAndDirection(t *testing.T) {
	for _, s := range []string{"left-half", "left_half", "LeftHalf", " LEFT-HALF "} {
		r, err := ParseRegion(s)
		assert.NoError(t, err, s)
		assert.Equal(t, LeftHalf, r, s)
	}
	_, err := ParseRegion("middle")
	assert.Error(t, err)

	d, err := ParseDirection("Up")
	assert.NoError(t, err)
	assert.Equal(t, Up, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	text, err := Down.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "down", string(text))

	var back Region
	assert.NoError(t, back.UnmarshalText([]byte("full-screen")))
	assert.Equal(t, FullScreen, back)
}

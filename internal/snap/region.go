package snap

import (
	"fmt"
	"strings"
)

// Region names a canonical window placement on a work area.
type Region int

const (
	// None means the window does not sit on any recognised placement.
	None Region = iota
	RightTop
	RightBottom
	LeftBottom
	LeftTop
	RightHalf
	LeftHalf
	FullScreen

	regionCount
)

// placed lists every region with a canonical rectangle, in the order the
// classifier scores them. Ties resolve to the earlier entry.
var placed = [...]Region{
	RightTop,
	RightBottom,
	LeftBottom,
	LeftTop,
	RightHalf,
	LeftHalf,
	FullScreen,
}

var regionNames = [regionCount]string{
	None:        "none",
	RightTop:    "right-top",
	RightBottom: "right-bottom",
	LeftBottom:  "left-bottom",
	LeftTop:     "left-top",
	RightHalf:   "right-half",
	LeftHalf:    "left-half",
	FullScreen:  "full-screen",
}

// Placed returns the regions that have a canonical rectangle.
func Placed() []Region {
	out := make([]Region, len(placed))
	copy(out, placed[:])
	return out
}

// Regions returns every region, None first.
func Regions() []Region {
	out := make([]Region, 0, regionCount)
	for r := None; r < regionCount; r++ {
		out = append(out, r)
	}
	return out
}

// Valid reports whether r is None or one of the placed regions.
func (r Region) Valid() bool {
	return r >= None && r < regionCount
}

// String returns the hyphenated name, such as "left-half".
func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("region(%d)", int(r))
	}
	return regionNames[r]
}

// MarshalText encodes the region by name, so JSON payloads stay readable.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid region %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts any spelling ParseRegion does.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRegion accepts "left-half", "left_half", "LeftHalf" and similar spellings.
func ParseRegion(s string) (Region, error) {
	key := normalizeName(s)
	for r := None; r < regionCount; r++ {
		if normalizeName(regionNames[r]) == key {
			return r, nil
		}
	}
	return None, fmt.Errorf("unknown region %q", s)
}

// Direction is one of the four snap commands.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down

	directionCount
)

var directionNames = [directionCount]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

// Directions returns the four directions in declaration order.
func Directions() []Direction {
	return []Direction{Left, Right, Up, Down}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Left && d < directionCount
}

// String returns the lowercase name.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts any spelling ParseDirection does.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses "left", "right", "up" or "down" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	key := normalizeName(s)
	for d := Left; d < directionCount; d++ {
		if directionNames[d] == key {
			return d, nil
		}
	}
	return Left, fmt.Errorf("unknown direction %q (want left, right, up or down)", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

package snap

import (
	"sync"

	"github.com/1broseidon/quadsnap/internal/geom"
)

const (
	DefaultMenuInset   = 12.0
	DefaultCenterInset = 1.0 / 9.0
)

// Params holds the constants the layout generator is built from.
type Params struct {
	// MenuInset is taken off the height of the upper quadrants and added to
	// the top of the lower ones.
	MenuInset float64
	// CenterInset is the fraction of the work area trimmed from each side to
	// form the centered placement.
	CenterInset float64
}

// DefaultParams returns the stock menu-bar inset and centered-region fraction.
func DefaultParams() Params {
	return Params{
		MenuInset:   DefaultMenuInset,
		CenterInset: DefaultCenterInset,
	}
}

// Layout maps every placed region of one work area to its canonical rectangle.
type Layout struct {
	WorkArea geom.Rect
	// Center is the large centered placement used when a window is demoted
	// out of full screen. It is not a classification target.
	Center  geom.Rect
	regions [regionCount]geom.Rect
}

// Rect returns the canonical rectangle for r. None has no rectangle.
func (l *Layout) Rect(r Region) (geom.Rect, bool) {
	if r == None || !r.Valid() {
		return geom.Rect{}, false
	}
	return l.regions[r], true
}

// LayoutFor computes the canonical rectangles for a work area.
func LayoutFor(workArea geom.Rect, p Params) *Layout {
	x0, y0 := workArea.Min.X, workArea.Min.Y
	w, h := workArea.Size()
	halfW := w / 2
	quarterH := h/2 - p.MenuInset
	lowerY := y0 + h/2 + p.MenuInset

	l := &Layout{
		WorkArea: workArea,
		Center:   workArea.Inset(w*p.CenterInset, h*p.CenterInset),
	}
	l.regions[RightTop] = geom.XYWH(x0+halfW, y0, halfW, quarterH)
	l.regions[RightBottom] = geom.XYWH(x0+halfW, lowerY, halfW, quarterH)
	l.regions[LeftBottom] = geom.XYWH(x0, lowerY, halfW, quarterH)
	l.regions[LeftTop] = geom.XYWH(x0, y0, halfW, quarterH)
	l.regions[RightHalf] = geom.XYWH(x0+halfW, y0, halfW, h)
	l.regions[LeftHalf] = geom.XYWH(x0, y0, halfW, h)
	l.regions[FullScreen] = workArea
	return l
}

type sizeKey struct {
	w, h float64
}

func (l *Layout) translate(dx, dy float64) *Layout {
	out := &Layout{
		WorkArea: l.WorkArea.Translate(dx, dy),
		Center:   l.Center.Translate(dx, dy),
	}
	for i, r := range l.regions {
		out.regions[i] = r.Translate(dx, dy)
	}
	return out
}

// LayoutCache memoises layouts by work-area size. A hit for a work area at a
// different origin is translated rather than recomputed.
type LayoutCache struct {
	mu      sync.Mutex
	params  Params
	layouts map[sizeKey]*Layout
	misses  int
}

// NewLayoutCache creates an empty cache producing layouts with p.
func NewLayoutCache(p Params) *LayoutCache {
	return &LayoutCache{
		params:  p,
		layouts: make(map[sizeKey]*Layout),
	}
}

// Get returns the layout for workArea, computing it on first use of its size.
func (c *LayoutCache) Get(workArea geom.Rect) *Layout {
	w, h := workArea.Size()
	key := sizeKey{w: w, h: h}

	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.layouts[key]; ok {
		if l.WorkArea.Min != workArea.Min {
			return l.translate(workArea.Min.X-l.WorkArea.Min.X, workArea.Min.Y-l.WorkArea.Min.Y)
		}
		return l
	}
	l := LayoutFor(workArea, c.params)
	c.layouts[key] = l
	c.misses++
	return l
}

// Reset drops every cached layout.
func (c *LayoutCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts = make(map[sizeKey]*Layout)
	c.misses = 0
}

// SetParams replaces the layout constants and clears the cache, including the
// miss counter.
func (c *LayoutCache) SetParams(p Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = p
	c.layouts = make(map[sizeKey]*Layout)
	c.misses = 0
}

// Len is the number of distinct sizes cached.
func (c *LayoutCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.layouts)
}

// Misses counts layout computations since the last Reset or SetParams.
func (c *LayoutCache) Misses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

// Params returns the constants new layouts are computed with.
func (c *LayoutCache) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/quadsnap/internal/geom"
)

// Monitor represents a physical display. WorkArea is the part of Bounds left
// over once docks and panels are excluded.
type Monitor struct {
	ID       int
	Name     string
	Bounds   geom.Rect
	WorkArea geom.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		bounds := geom.XYWH(float64(info.X), float64(info.Y), float64(info.Width), float64(info.Height))
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     name,
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}
	return monitors, nil
}

// GetActiveMonitor returns the monitor holding the focused window, falling
// back to the one under the pointer and then the first monitor. Its WorkArea
// excludes dock struts, or failing that, is clipped to _NET_WORKAREA.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}

	var active *Monitor
	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if x, y, w, h, err := c.WindowGeometry(win); err == nil {
			active = monitorAt(monitors, geom.Pt(float64(x+w/2), float64(y+h/2)))
		}
	}
	if active == nil {
		if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			active = monitorAt(monitors, geom.Pt(float64(pointer.RootX), float64(pointer.RootY)))
		}
	}
	if active == nil {
		active = &monitors[0]
	}

	if area, ok := c.strutWorkArea(active.Bounds); ok {
		active.WorkArea = area
	} else if area, ok := c.ewmhWorkArea(active.Bounds); ok {
		active.WorkArea = area
	}
	return active, nil
}

func monitorAt(monitors []Monitor, p geom.Point) *Monitor {
	for i := range monitors {
		if monitors[i].Bounds.Contains(p) {
			return &monitors[i]
		}
	}
	return nil
}

// ewmhWorkArea clips bounds to the desktop-wide _NET_WORKAREA of the current
// desktop.
func (c *Connection) ewmhWorkArea(bounds geom.Rect) (geom.Rect, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return geom.Rect{}, false
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(areas) {
		idx = int(desktop)
	}
	wa := areas[idx]

	clipped := bounds.Intersect(geom.XYWH(float64(wa.X), float64(wa.Y), float64(wa.Width), float64(wa.Height)))
	if clipped.Empty() {
		return geom.Rect{}, false
	}
	return clipped, true
}

type struts struct {
	left, right, top, bottom float64
}

// strutWorkArea subtracts the struts of every dock window that overlaps bounds.
func (c *Connection) strutWorkArea(bounds geom.Rect) (geom.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom.Rect{}, false
	}
	rootW := float64(rootGeom.Width)
	rootH := float64(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return geom.Rect{}, false
	}

	var acc struts
	for _, win := range clients {
		if !c.isDock(win) {
			continue
		}
		sp, err := ewmh.WmStrutPartialGet(c.XUtil, win)
		if err != nil {
			// Some docks only set _NET_WM_STRUT, which spans the whole edge.
			s, err := ewmh.WmStrutGet(c.XUtil, win)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: uint(rootH - 1), RightEndY: uint(rootH - 1),
				TopEndX: uint(rootW - 1), BottomEndX: uint(rootW - 1),
			}
		}
		acc.add(bounds, rootW, rootH, sp)
	}

	if acc == (struts{}) {
		return geom.Rect{}, false
	}

	area := geom.Rect{
		Min: geom.Pt(bounds.Min.X+acc.left, bounds.Min.Y+acc.top),
		Max: geom.Pt(bounds.Max.X-acc.right, bounds.Max.Y-acc.bottom),
	}
	if area.Width() < 1 || area.Height() < 1 {
		return geom.Rect{}, false
	}
	return area, true
}

func (c *Connection) isDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// add folds one dock's partial strut into the per-edge maximum for bounds.
func (s *struts) add(bounds geom.Rect, rootW, rootH float64, sp *ewmh.WmStrutPartial) {
	if sp.Top > 0 {
		band := geom.Rect{
			Min: geom.Pt(float64(sp.TopStartX), 0),
			Max: geom.Pt(float64(sp.TopEndX)+1, float64(sp.Top)),
		}
		if o := bounds.Intersect(band); !o.Empty() {
			s.top = max(s.top, o.Height())
		}
	}
	if sp.Bottom > 0 {
		band := geom.Rect{
			Min: geom.Pt(float64(sp.BottomStartX), rootH-float64(sp.Bottom)),
			Max: geom.Pt(float64(sp.BottomEndX)+1, rootH),
		}
		if o := bounds.Intersect(band); !o.Empty() {
			s.bottom = max(s.bottom, o.Height())
		}
	}
	if sp.Left > 0 {
		band := geom.Rect{
			Min: geom.Pt(0, float64(sp.LeftStartY)),
			Max: geom.Pt(float64(sp.Left), float64(sp.LeftEndY)+1),
		}
		if o := bounds.Intersect(band); !o.Empty() {
			s.left = max(s.left, o.Width())
		}
	}
	if sp.Right > 0 {
		band := geom.Rect{
			Min: geom.Pt(rootW-float64(sp.Right), float64(sp.RightStartY)),
			Max: geom.Pt(rootW, float64(sp.RightEndY)+1),
		}
		if o := bounds.Intersect(band); !o.Empty() {
			s.right = max(s.right, o.Width())
		}
	}
}

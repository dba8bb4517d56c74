// Package snap classifies a window against the canonical placements of its
// work area and moves it to the next placement for a directional command.
package snap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/1broseidon/quadsnap/internal/geom"
	"github.com/1broseidon/quadsnap/internal/platform"
)

// ErrNothingToUndo is returned by Undo when the window has no recorded
// geometry from a previous snap.
var ErrNothingToUndo = errors.New("nothing to undo")

// Options configures a new Engine. Params is used as given, so callers wanting
// the stock layout pass DefaultParams. A classifier without a positive
// similarity factor and a nil logger fall back to defaults.
type Options struct {
	Params     Params
	Classifier Classifier
	Logger     *slog.Logger
}

// Result describes a single handled command.
type Result struct {
	Window    platform.WindowID `json:"window"`
	Direction Direction         `json:"direction"`
	From      Region            `json:"from"`
	To        Region            `json:"to"`
	Previous  platform.Rect     `json:"previous"`
	Target    platform.Rect     `json:"target"`
	// Applied is false when the command resolved to no movement.
	Applied bool      `json:"applied"`
	At      time.Time `json:"at"`
}

// Classification is the engine's view of a window without moving it.
type Classification struct {
	Window   platform.WindowID `json:"window"`
	Region   Region            `json:"region"`
	Bounds   platform.Rect     `json:"bounds"`
	WorkArea platform.Rect     `json:"work_area"`
	Matches  []Match           `json:"matches"`
}

// Placement is one named rectangle of a resolved layout.
type Placement struct {
	Name string        `json:"name"`
	Rect platform.Rect `json:"rect"`
}

// Engine handles directional snap commands against a platform backend.
type Engine struct {
	mu         sync.Mutex
	backend    platform.Backend
	cache      *LayoutCache
	classifier Classifier
	logger     *slog.Logger
	previous   map[platform.WindowID]platform.Rect
	last       *Result
}

// NewEngine creates an engine that reads and moves windows through backend.
func NewEngine(backend platform.Backend, opts Options) *Engine {
	classifier := opts.Classifier
	if classifier.SimilarityFactor <= 0 {
		classifier = DefaultClassifier()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		backend:    backend,
		cache:      NewLayoutCache(opts.Params),
		classifier: classifier,
		logger:     logger,
		previous:   make(map[platform.WindowID]platform.Rect),
	}
}

// Apply classifies win, looks up the transition for d and moves the window to
// the resulting placement with a single MoveResize.
func (e *Engine) Apply(d Direction, win platform.WindowID) (Result, error) {
	if !d.Valid() {
		return Result{}, fmt.Errorf("invalid direction %d", int(d))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	layout, err := e.layoutLocked()
	if err != nil {
		return Result{}, err
	}
	bounds, err := e.backend.WindowBounds(win)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read window %d geometry: %w", win, err)
	}

	from := e.classifier.Classify(RectFromPlatform(bounds), layout)
	to := Next(from, d)

	res := Result{
		Window:    win,
		Direction: d,
		From:      from,
		To:        to,
		Previous:  bounds,
		Target:    bounds,
		At:        time.Now(),
	}

	target, ok := resolveTarget(layout, from, to)
	if !ok {
		e.logger.Debug("snap resolved to no movement",
			"window", win, "direction", d, "from", from)
		e.last = &res
		return res, nil
	}

	res.Target = RectToPlatform(target)
	if err := e.backend.MoveResize(win, res.Target); err != nil {
		return Result{}, fmt.Errorf("failed to move window %d: %w", win, err)
	}
	res.Applied = true

	if res.Target != bounds {
		e.previous[win] = bounds
	}
	e.last = &res

	e.logger.Info("window snapped",
		"window", win,
		"direction", d,
		"from", from,
		"to", to,
		"target", target.String(),
	)
	return res, nil
}

// ApplyActive runs Apply on the focused window.
func (e *Engine) ApplyActive(d Direction) (Result, error) {
	win, err := e.backend.ActiveWindow()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get active window: %w", err)
	}
	return e.Apply(d, win)
}

// resolveTarget maps the transition outcome to a rectangle. A window demoted
// out of a recognised placement into None lands on the centered placement; a
// window already in None stays where it is.
func resolveTarget(layout *Layout, from, to Region) (geom.Rect, bool) {
	if to != None {
		return layout.Rect(to)
	}
	if from == None {
		return geom.Rect{}, false
	}
	return layout.Center, true
}

// Classify reports the region win currently occupies along with the per-region
// scores.
func (e *Engine) Classify(win platform.WindowID) (Classification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	layout, err := e.layoutLocked()
	if err != nil {
		return Classification{}, err
	}
	bounds, err := e.backend.WindowBounds(win)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to read window %d geometry: %w", win, err)
	}

	window := RectFromPlatform(bounds)
	return Classification{
		Window:   win,
		Region:   e.classifier.Classify(window, layout),
		Bounds:   bounds,
		WorkArea: RectToPlatform(layout.WorkArea),
		Matches:  e.classifier.Score(window, layout),
	}, nil
}

// ClassifyActive runs Classify on the focused window.
func (e *Engine) ClassifyActive() (Classification, error) {
	win, err := e.backend.ActiveWindow()
	if err != nil {
		return Classification{}, fmt.Errorf("failed to get active window: %w", err)
	}
	return e.Classify(win)
}

// Undo restores the geometry win had before its last snap.
func (e *Engine) Undo(win platform.WindowID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.previous[win]
	if !ok {
		return ErrNothingToUndo
	}
	if err := e.backend.MoveResize(win, prev); err != nil {
		return fmt.Errorf("failed to restore window %d: %w", win, err)
	}
	delete(e.previous, win)
	e.logger.Info("snap undone", "window", win,
		"x", prev.X, "y", prev.Y, "width", prev.Width, "height", prev.Height)
	return nil
}

// UndoActive runs Undo on the focused window.
func (e *Engine) UndoActive() error {
	win, err := e.backend.ActiveWindow()
	if err != nil {
		return fmt.Errorf("failed to get active window: %w", err)
	}
	return e.Undo(win)
}

// Placements resolves the layout of the active display.
func (e *Engine) Placements() (platform.Rect, []Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	layout, err := e.layoutLocked()
	if err != nil {
		return platform.Rect{}, nil, err
	}
	return RectToPlatform(layout.WorkArea), PlacementsOf(layout), nil
}

// PlacementsOf lists every placed region of layout followed by the centered
// placement.
func PlacementsOf(layout *Layout) []Placement {
	out := make([]Placement, 0, len(placed)+1)
	for _, r := range placed {
		rect, _ := layout.Rect(r)
		out = append(out, Placement{Name: r.String(), Rect: RectToPlatform(rect)})
	}
	out = append(out, Placement{Name: "center", Rect: RectToPlatform(layout.Center)})
	return out
}

// Update swaps the layout constants and similarity factor. Cached layouts are
// dropped.
func (e *Engine) Update(p Params, c Classifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache.SetParams(p)
	if c.SimilarityFactor > 0 {
		e.classifier = c
	}
	e.logger.Info("snap parameters updated",
		"menu_inset", p.MenuInset,
		"center_inset", p.CenterInset,
		"similarity_factor", e.classifier.SimilarityFactor,
	)
}

// Classifier returns the classifier currently in use.
func (e *Engine) Classifier() Classifier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.classifier
}

// LastResult returns the most recent handled command, if any.
func (e *Engine) LastResult() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// Cache exposes the layout cache, mainly so tests and status reporting can
// inspect or reset it.
func (e *Engine) Cache() *LayoutCache {
	return e.cache
}

func (e *Engine) layoutLocked() (*Layout, error) {
	display, err := e.backend.ActiveDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to get active display: %w", err)
	}
	area := display.Usable
	if area.Width <= 0 || area.Height <= 0 {
		area = display.Bounds
	}
	return e.cache.Get(RectFromPlatform(area)), nil
}

// RectFromPlatform converts integer host geometry to a geom.Rect.
func RectFromPlatform(r platform.Rect) geom.Rect {
	return geom.XYWH(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
}

// RectToPlatform rounds each edge of r to the pixel grid, so that adjacent
// placements stay adjacent after rounding.
func RectToPlatform(r geom.Rect) platform.Rect {
	x0 := int(math.Round(r.Min.X))
	y0 := int(math.Round(r.Min.Y))
	x1 := int(math.Round(r.Max.X))
	y1 := int(math.Round(r.Max.Y))
	return platform.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

package hotkeys

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	mu sync.Mutex
	// directions is the set whose grabs all succeeded. It is nil while no
	// complete set is grabbed, including after a failed rebind.
	directions map[snap.Direction]string
	// dirty is set once any direction grab may exist on the root window.
	dirty bool
	onDir func(snap.Direction)
	funcs []binding
}

type rebindPlan int

const (
	// planSwap keeps the current grabs and only replaces the callback.
	planSwap rebindPlan = iota
	// planGrab grabs onto a root window holding no direction grabs.
	planGrab
	// planRegrab releases every grab first and restores RegisterFunc keys.
	planRegrab
)

func (h *Handler) planLocked(bindings map[snap.Direction]string) rebindPlan {
	switch {
	case h.directions != nil && SameBindings(h.directions, bindings):
		return planSwap
	case h.dirty:
		return planRegrab
	default:
		return planGrab
	}
}

// beginGrabLocked forgets the committed set before any grab is touched, so a
// rebind that fails partway is redone in full by the next call.
func (h *Handler) beginGrabLocked() {
	h.directions = nil
	h.dirty = true
}

func (h *Handler) commitLocked(bindings map[snap.Direction]string) {
	h.directions = make(map[snap.Direction]string, len(bindings))
	for d, seq := range bindings {
		h.directions[d] = seq
	}
}

type binding struct {
	seq string
	fn  func()
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{
		xu:   xu,
		root: root,
	}
}

// RegisterDirections grabs one key sequence per direction and calls fn with
// the direction when it is pressed. Registering the same set again only swaps
// fn. Any other call releases every grab on the root window and grabs the new
// bindings together with those added through RegisterFunc. After an error no
// set is considered grabbed, so the next call grabs again from scratch.
func (h *Handler) RegisterDirections(bindings map[snap.Direction]string, fn func(snap.Direction)) error {
	if err := ValidateBindings(bindings); err != nil {
		return err
	}
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	plan := h.planLocked(bindings)
	if plan == planSwap {
		h.onDir = fn
		return nil
	}

	h.beginGrabLocked()
	if plan == planRegrab {
		keybind.Detach(h.xu, h.root)
		for _, b := range h.funcs {
			if err := h.connect(b.seq, b.fn); err != nil {
				return err
			}
		}
	}

	h.onDir = fn
	for _, d := range snap.Directions() {
		d := d
		seq := bindings[d]
		if err := h.connect(seq, func() {
			h.mu.Lock()
			cb := h.onDir
			h.mu.Unlock()
			if cb != nil {
				cb(d)
			}
		}); err != nil {
			return fmt.Errorf("failed to register %s hotkey %q: %w", d, seq, err)
		}
		log.Printf("Registered %s hotkey: %s", d, seq)
	}

	h.commitLocked(bindings)
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.connect(keySequence, callback); err != nil {
		return err
	}
	h.funcs = append(h.funcs, binding{seq: keySequence, fn: callback})
	return nil
}

func (h *Handler) connect(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// ValidateBindings checks that every direction has a distinct, non-empty key
// sequence and that no unknown direction is bound.
func ValidateBindings(bindings map[snap.Direction]string) error {
	seen := make(map[string]snap.Direction, len(bindings))
	for d := range bindings {
		if !d.Valid() {
			return fmt.Errorf("invalid direction %d in bindings", int(d))
		}
	}
	for _, d := range snap.Directions() {
		seq, ok := bindings[d]
		if !ok || strings.TrimSpace(seq) == "" {
			return fmt.Errorf("missing hotkey for %s", d)
		}
		key := strings.ToLower(strings.TrimSpace(seq))
		if other, dup := seen[key]; dup {
			return fmt.Errorf("hotkey %q is bound to both %s and %s", seq, other, d)
		}
		seen[key] = d
	}
	return nil
}

// SameBindings reports whether a and b bind the same sequences.
func SameBindings(a, b map[snap.Direction]string) bool {
	if len(a) != len(b) {
		return false
	}
	for d, seq := range a {
		if b[d] != seq {
			return false
		}
	}
	return true
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns every combination of the given lock masks, including 0.
func ignoreMasks(base []uint16) []uint16 {
	masks := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		masks = append(masks, mask)
	}
	return masks
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

package hotkeys

import (
	"strings"
	"testing"

	"github.com/1broseidon/quadsnap/internal/snap"
)

func defaultBindings() map[snap.Direction]string {
	return map[snap.Direction]string{
		snap.Left:  "Mod4-Mod1-Left",
		snap.Right: "Mod4-Mod1-Right",
		snap.Up:    "Mod4-Mod1-Up",
		snap.Down:  "Mod4-Mod1-Down",
	}
}

func TestValidateBindings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[snap.Direction]string)
		wantErr string
	}{
		{name: "valid", mutate: func(map[snap.Direction]string) {}},
		{
			name:    "missing direction",
			mutate:  func(b map[snap.Direction]string) { delete(b, snap.Up) },
			wantErr: "missing hotkey for up",
		},
		{
			name:    "blank sequence",
			mutate:  func(b map[snap.Direction]string) { b[snap.Down] = "  " },
			wantErr: "missing hotkey for down",
		},
		{
			name:    "duplicate ignoring case",
			mutate:  func(b map[snap.Direction]string) { b[snap.Right] = "mod4-mod1-left" },
			wantErr: "bound to both left and right",
		},
		{
			name:    "unknown direction",
			mutate:  func(b map[snap.Direction]string) { b[snap.Direction(9)] = "F9" },
			wantErr: "invalid direction 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := defaultBindings()
			tt.mutate(b)
			err := ValidateBindings(b)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSameBindings(t *testing.T) {
	a := defaultBindings()
	b := defaultBindings()
	if !SameBindings(a, b) {
		t.Fatalf("expected identical bindings to match")
	}

	b[snap.Left] = "Mod4-h"
	if SameBindings(a, b) {
		t.Fatalf("expected changed binding to differ")
	}

	delete(b, snap.Left)
	if SameBindings(a, b) {
		t.Fatalf("expected missing binding to differ")
	}
}

func TestIgnoreMasks(t *testing.T) {
	masks := ignoreMasks([]uint16{2, 16})
	if len(masks) != 4 {
		t.Fatalf("expected 4 masks, got %v", masks)
	}
	want := map[uint16]bool{0: true, 2: true, 16: true, 18: true}
	for _, m := range masks {
		if !want[m] {
			t.Fatalf("unexpected mask %d in %v", m, masks)
		}
		delete(want, m)
	}
	if len(want) != 0 {
		t.Fatalf("missing masks %v", want)
	}
}

func TestRegisterWithoutX11Backend(t *testing.T) {
	h := NewHandler(nil)
	if err := h.RegisterDirections(defaultBindings(), func(snap.Direction) {}); err == nil {
		t.Fatalf("expected error without an X11 backend")
	}
	if err := h.RegisterFunc("Mod4-z", func() {}); err == nil {
		t.Fatalf("expected error without an X11 backend")
	}
}

func TestRebindPlan(t *testing.T) {
	h := NewHandler(nil)
	old := defaultBindings()

	if got := h.planLocked(old); got != planGrab {
		t.Fatalf("first registration: expected planGrab, got %d", got)
	}
	h.beginGrabLocked()
	h.commitLocked(old)

	if got := h.planLocked(defaultBindings()); got != planSwap {
		t.Fatalf("same bindings: expected planSwap, got %d", got)
	}

	changed := defaultBindings()
	changed[snap.Up] = "Mod4-Bogus"
	if got := h.planLocked(changed); got != planRegrab {
		t.Fatalf("changed bindings: expected planRegrab, got %d", got)
	}
}

func TestRebindPlan_FailedRebindForcesRegrab(t *testing.T) {
	h := NewHandler(nil)
	old := defaultBindings()
	h.beginGrabLocked()
	h.commitLocked(old)

	// A rebind to a bad sequence starts but never commits.
	bad := defaultBindings()
	bad[snap.Up] = "Mod4-Bogus"
	if got := h.planLocked(bad); got != planRegrab {
		t.Fatalf("expected planRegrab, got %d", got)
	}
	h.beginGrabLocked()

	// Reverting to the old bindings must grab them again, not just swap.
	if got := h.planLocked(old); got != planRegrab {
		t.Fatalf("revert after failed rebind: expected planRegrab, got %d", got)
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: "1440x900", w: 1440, h: 900},
		{in: " 1920X1080 ", w: 1920, h: 1080},
		{in: "1440", wantErr: true},
		{in: "1440x", wantErr: true},
		{in: "ax900", wantErr: true},
		{in: "0x900", wantErr: true},
		{in: "1x2x3", wantErr: true},
	}

	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSize(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSize(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestPreviewLayout_1440x900(t *testing.T) {
	data := previewLayout(1440, 900, snap.DefaultParams())

	if data.WorkArea != (platform.Rect{Width: 1440, Height: 900}) {
		t.Fatalf("unexpected work area: %+v", data.WorkArea)
	}

	want := map[string]platform.Rect{
		"right-top":    {X: 720, Y: 0, Width: 720, Height: 438},
		"right-bottom": {X: 720, Y: 462, Width: 720, Height: 438},
		"left-bottom":  {X: 0, Y: 462, Width: 720, Height: 438},
		"left-top":     {X: 0, Y: 0, Width: 720, Height: 438},
		"right-half":   {X: 720, Y: 0, Width: 720, Height: 900},
		"left-half":    {X: 0, Y: 0, Width: 720, Height: 900},
		"full-screen":  {X: 0, Y: 0, Width: 1440, Height: 900},
		"center":       {X: 160, Y: 100, Width: 1120, Height: 700},
	}
	if len(data.Placements) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(data.Placements))
	}
	for _, p := range data.Placements {
		if got, ok := want[p.Name]; !ok || got != p.Rect {
			t.Errorf("placement %s = %+v, want %+v", p.Name, p.Rect, got)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	var buf bytes.Buffer
	renderLayout(&buf, previewLayout(1440, 900, snap.DefaultParams()))

	out := buf.String()
	if !strings.HasPrefix(out, "work_area: 1440x900+0+0\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "left-bottom") || !strings.Contains(out, "720x438+0+462") {
		t.Fatalf("expected left-bottom rectangle in output:\n%s", out)
	}
}

func TestFormatResult(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	moved := snap.Result{
		Direction: snap.Down,
		From:      snap.FullScreen,
		To:        snap.None,
		Target:    platform.Rect{X: 160, Y: 100, Width: 1120, Height: 700},
		Applied:   true,
		At:        at,
	}
	if got, want := formatResult(moved), "down: full-screen -> center 1120x700+160+100"; got != want {
		t.Fatalf("formatResult = %q, want %q", got, want)
	}

	stayed := snap.Result{Direction: snap.Down, From: snap.None, To: snap.None, At: at}
	if got, want := formatResult(stayed), "down: none (no movement)"; got != want {
		t.Fatalf("formatResult = %q, want %q", got, want)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/quadsnap/internal/geom"
	"github.com/1broseidon/quadsnap/internal/ipc"
	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	size := fs.String("size", "", "Compute offline for a WxH work area instead of asking the daemon")
	path := fs.String("path", "", "Config file path (default: ~/.config/quadsnap/config.yaml)")
	jsonOut := fs.Bool("json", false, "Print the layout as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: quadsnap layout [--size WxH] [--path PATH] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the placement rectangles of the active monitor. With --size the")
		fmt.Fprintln(os.Stderr, "layout is computed locally from the config, without a running daemon.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "layout takes no arguments")
		fs.Usage()
		return 2
	}

	var data ipc.LayoutData
	if *size != "" {
		w, h, err := parseSize(*size)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data = previewLayout(w, h, res.Config.Params())
	} else {
		live, err := ipc.NewClient().GetLayout()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data = *live
	}

	if wantJSON(*jsonOut) {
		return printJSON(data)
	}
	renderLayout(os.Stdout, data)
	return 0
}

// previewLayout resolves the placements of a w x h work area at the origin.
func previewLayout(w, h int, p snap.Params) ipc.LayoutData {
	layout := snap.LayoutFor(geom.XYWH(0, 0, float64(w), float64(h)), p)
	return ipc.LayoutData{
		WorkArea:   platform.Rect{Width: w, Height: h},
		Placements: snap.PlacementsOf(layout),
	}
}

func renderLayout(w io.Writer, data ipc.LayoutData) {
	fmt.Fprintf(w, "work_area: %s\n", formatRect(data.WorkArea))
	for _, p := range data.Placements {
		fmt.Fprintf(w, "  %-13s %s\n", p.Name, formatRect(p.Rect))
	}
}

// parseSize parses "WIDTHxHEIGHT", e.g. "1440x900".
func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}

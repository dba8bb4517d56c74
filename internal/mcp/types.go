package mcp

// SnapWindowInput is the input for the snap_window tool.
type SnapWindowInput struct {
	Direction string `json:"direction" jsonschema:"Direction to snap the focused window: left, right, up or down"`
}

// Rect is a window rectangle in root-window pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SnapWindowOutput is the output for the snap_window tool.
type SnapWindowOutput struct {
	Window  uint32 `json:"window"`
	From    string `json:"from"`
	To      string `json:"to"`
	Applied bool   `json:"applied"`
	Target  Rect   `json:"target"`
}

// ClassifyWindowInput is the input for the classify_window tool.
type ClassifyWindowInput struct{}

// RegionScore is the classifier score of one region.
type RegionScore struct {
	Region string  `json:"region"`
	Score  float64 `json:"score"`
}

// ClassifyWindowOutput is the output for the classify_window tool.
type ClassifyWindowOutput struct {
	Window   uint32        `json:"window"`
	Region   string        `json:"region"`
	Bounds   Rect          `json:"bounds"`
	WorkArea Rect          `json:"work_area"`
	Scores   []RegionScore `json:"scores"`
}

// UndoSnapInput is the input for the undo_snap tool.
type UndoSnapInput struct{}

// UndoSnapOutput is the output for the undo_snap tool.
type UndoSnapOutput struct {
	Restored bool `json:"restored"`
}

// GetLayoutInput is the input for the get_layout tool.
type GetLayoutInput struct{}

// Placement is a named rectangle of the active layout.
type Placement struct {
	Name string `json:"name"`
	Rect Rect   `json:"rect"`
}

// GetLayoutOutput is the output for the get_layout tool.
type GetLayoutOutput struct {
	WorkArea   Rect        `json:"work_area"`
	Placements []Placement `json:"placements"`
}

package platform

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mock_platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Backend abstracts the window-system operations the snap engine needs.
type Backend interface {
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	WindowBounds(windowID WindowID) (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
}

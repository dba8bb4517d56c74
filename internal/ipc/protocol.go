package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandSnap      CommandType = "SNAP"
	CommandClassify  CommandType = "CLASSIFY"
	CommandUndo      CommandType = "UNDO"
	CommandGetLayout CommandType = "GET_LAYOUT"
	CommandGetStatus CommandType = "GET_STATUS"
	CommandReload    CommandType = "RELOAD"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SnapPayload is the payload of SNAP.
type SnapPayload struct {
	Direction string `json:"direction"`
}

// LayoutData is returned by GET_LAYOUT.
type LayoutData struct {
	WorkArea   platform.Rect    `json:"work_area"`
	Placements []snap.Placement `json:"placements"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning    bool         `json:"daemon_running"`
	UptimeSeconds    int64        `json:"uptime_seconds"`
	CachedLayouts    int          `json:"cached_layouts"`
	LayoutMisses     int          `json:"layout_misses"`
	SimilarityFactor float64      `json:"similarity_factor"`
	MenuInset        float64      `json:"menu_inset"`
	LastSnap         *snap.Result `json:"last_snap,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/quadsnap/internal/ipc"
	"github.com/1broseidon/quadsnap/internal/platform"
	"github.com/1broseidon/quadsnap/internal/snap"
)

const (
	ServerName    = "quadsnap"
	ServerVersion = "0.1.0"
)

// daemonClient is the subset of ipc.Client the tools forward to.
type daemonClient interface {
	Snap(direction string) (*snap.Result, error)
	Classify() (*snap.Classification, error)
	Undo() error
	GetLayout() (*ipc.LayoutData, error)
}

// Server exposes the running daemon's snap commands as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates an MCP server that talks to the daemon over its IPC
// socket.
func NewServer() *Server {
	return newServer(ipc.NewClient())
}

func newServer(client daemonClient) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Snap the focused window one step in a direction (left, right, up, down). The window moves between quadrants, halves, full screen and a centered placement of the active monitor's work area.",
	}, s.handleSnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "classify_window",
		Description: "Report which placement the focused window currently occupies, with the score of every candidate region. Does not move the window.",
	}, s.handleClassifyWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo_snap",
		Description: "Restore the focused window to the geometry it had before its last snap. Each snap can be undone once.",
	}, s.handleUndoSnap)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "List the placement rectangles of the active monitor's work area.",
	}, s.handleGetLayout)
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, SnapWindowOutput, error) {
	d, err := snap.ParseDirection(args.Direction)
	if err != nil {
		return nil, SnapWindowOutput{}, err
	}

	res, err := s.client.Snap(d.String())
	if err != nil {
		return nil, SnapWindowOutput{}, fmt.Errorf("snap %s: %w", d, err)
	}

	return nil, SnapWindowOutput{
		Window:  uint32(res.Window),
		From:    res.From.String(),
		To:      res.To.String(),
		Applied: res.Applied,
		Target:  rectOut(res.Target),
	}, nil
}

func (s *Server) handleClassifyWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ ClassifyWindowInput) (*mcpsdk.CallToolResult, ClassifyWindowOutput, error) {
	c, err := s.client.Classify()
	if err != nil {
		return nil, ClassifyWindowOutput{}, fmt.Errorf("classify: %w", err)
	}

	out := ClassifyWindowOutput{
		Window:   uint32(c.Window),
		Region:   c.Region.String(),
		Bounds:   rectOut(c.Bounds),
		WorkArea: rectOut(c.WorkArea),
		Scores:   make([]RegionScore, 0, len(c.Matches)),
	}
	for _, m := range c.Matches {
		out.Scores = append(out.Scores, RegionScore{Region: m.Region.String(), Score: m.Score})
	}
	return nil, out, nil
}

func (s *Server) handleUndoSnap(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndoSnapInput) (*mcpsdk.CallToolResult, UndoSnapOutput, error) {
	if err := s.client.Undo(); err != nil {
		// The error crosses the socket as text.
		if strings.Contains(err.Error(), snap.ErrNothingToUndo.Error()) {
			return nil, UndoSnapOutput{Restored: false}, nil
		}
		return nil, UndoSnapOutput{}, fmt.Errorf("undo: %w", err)
	}
	return nil, UndoSnapOutput{Restored: true}, nil
}

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetLayoutInput) (*mcpsdk.CallToolResult, GetLayoutOutput, error) {
	data, err := s.client.GetLayout()
	if err != nil {
		return nil, GetLayoutOutput{}, fmt.Errorf("get layout: %w", err)
	}

	out := GetLayoutOutput{
		WorkArea:   rectOut(data.WorkArea),
		Placements: make([]Placement, 0, len(data.Placements)),
	}
	for _, p := range data.Placements {
		out.Placements = append(out.Placements, Placement{Name: p.Name, Rect: rectOut(p.Rect)})
	}
	return nil, out, nil
}

func rectOut(r platform.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

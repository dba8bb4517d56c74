package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/quadsnap/internal/runtimepath"
	"github.com/1broseidon/quadsnap/internal/snap"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	engine       *snap.Engine
	reload       func() error
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default socket path. reload is
// invoked for RELOAD and may be nil.
func NewServer(engine *snap.Engine, reload func() error) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, engine, reload), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, engine *snap.Engine, reload func() error) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		engine:     engine,
		reload:     reload,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandSnap:
		return s.handleSnap(req.Payload)
	case CommandClassify:
		return s.handleClassify()
	case CommandUndo:
		return s.handleUndo()
	case CommandGetLayout:
		return s.handleGetLayout()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleSnap(payload json.RawMessage) *Response {
	var req SnapPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
		}
	}
	if req.Direction == "" {
		return NewErrorResponse("direction is required")
	}

	d, err := snap.ParseDirection(req.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	res, err := s.engine.ApplyActive(d)
	if err != nil {
		log.Printf("IPC: Snap %s failed: %v", d, err)
		return NewErrorResponse(fmt.Sprintf("Failed to snap: %v", err))
	}

	return okResponse(res)
}

func (s *Server) handleClassify() *Response {
	c, err := s.engine.ClassifyActive()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to classify: %v", err))
	}
	return okResponse(c)
}

func (s *Server) handleUndo() *Response {
	if err := s.engine.UndoActive(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to undo: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetLayout() *Response {
	area, placements, err := s.engine.Placements()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to resolve layout: %v", err))
	}
	return okResponse(LayoutData{WorkArea: area, Placements: placements})
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	cache := s.engine.Cache()
	status := StatusData{
		DaemonRunning:    true,
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
		CachedLayouts:    cache.Len(),
		LayoutMisses:     cache.Misses(),
		SimilarityFactor: s.engine.Classifier().SimilarityFactor,
		MenuInset:        cache.Params().MenuInset,
	}
	if last, ok := s.engine.LastResult(); ok {
		status.LastSnap = &last
	}

	return okResponse(status)
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	if s.reload == nil {
		return NewErrorResponse("reload is not supported")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

func okResponse(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

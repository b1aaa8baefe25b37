package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/menu"
)

// Server is the extension's host-facing end: a Unix socket the file-manager
// shim connects to for menu entries, activations and the handshake. Every
// piece of shared state is reached through the App loop, so concurrent shim
// connections cannot race the configuration.
type Server struct {
	socketPath string
	app        *launcher.App
	provider   *menu.Provider

	mu             sync.RWMutex
	defaultHostAPI int
	listener       net.Listener
	running        bool
	wg             sync.WaitGroup
}

// NewServer creates a bridge server on socketPath, "" meaning the default.
func NewServer(socketPath string, app *launcher.App, provider *menu.Provider) *Server {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Server{
		socketPath: socketPath,
		app:        app,
		provider:   provider,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// SetDefaultHostAPI sets the api generation assumed for hosts whose hello
// does not announce one.
func (s *Server) SetDefaultHostAPI(version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultHostAPI = version
}

// Start starts the Unix socket server
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	// Remove existing socket if it exists
	if err := os.RemoveAll(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	// Ensure socket directory exists
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create Unix socket: %w", err)
	}

	// Only the owner talks to the bridge.
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.acceptLoop()

	log.Printf("[INFO] Host bridge listening on %s", s.socketPath)
	return nil
}

// Stop stops the Unix socket server
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}

	// Wait for open connections to finish
	s.wg.Wait()

	os.Remove(s.socketPath)

	log.Printf("[INFO] Host bridge stopped")
	return nil
}

// IsRunning returns whether the server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.RLock()
			running := s.running
			s.mu.RUnlock()

			if !running {
				// Server is shutting down
				return
			}
			log.Printf("[ERROR] Bridge: failed to accept connection: %v", err)
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection serves one shim connection: a hello handshake followed by
// any number of request/response pairs on the same stream.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.New().String()
	debugLog("[DEBUG] Bridge %s: connection opened", connID)

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var ad adapter

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err != io.EOF {
				log.Printf("[ERROR] Bridge %s: failed to decode request: %v", connID, err)
			}
			debugLog("[DEBUG] Bridge %s: connection closed", connID)
			return
		}

		resp := s.dispatch(connID, &ad, &req)
		if err := encoder.Encode(&resp); err != nil {
			log.Printf("[ERROR] Bridge %s: failed to send response: %v", connID, err)
			return
		}
	}
}

// dispatch answers a single request. Every adapter call is funneled through
// the App loop; replies carry errors in-band so the shim never sees the
// connection drop over bad input.
func (s *Server) dispatch(connID string, ad *adapter, req *Request) Response {
	if req.Type == RequestHello {
		apiVersion := req.APIVersion
		if apiVersion == 0 {
			s.mu.RLock()
			apiVersion = s.defaultHostAPI
			s.mu.RUnlock()
			log.Printf("[INFO] Bridge %s: host announced no api version, assuming %d", connID, apiVersion)
		} else {
			log.Printf("[INFO] Bridge %s: host announced api version %d", connID, apiVersion)
		}
		*ad = s.adapterFor(apiVersion)
		var resp Response
		s.app.Do(func() { resp = (*ad).Hello() })
		return resp
	}

	if *ad == nil {
		return Response{Error: "hello required before any other request"}
	}

	switch req.Type {
	case RequestFileItems:
		var items []menu.Item
		s.app.Do(func() { items = (*ad).FileItems(req.Files) })
		return Response{OK: true, Items: items}

	case RequestBackgroundItems:
		if req.File == nil {
			return Response{Error: "background-items requires a file"}
		}
		var items []menu.Item
		s.app.Do(func() { items = (*ad).BackgroundItems(*req.File) })
		return Response{OK: true, Items: items}

	case RequestActivate:
		debugLog("[DEBUG] Bridge %s: activate %s (%s)", connID, req.Name, req.URI)
		var err error
		s.app.Do(func() { err = (*ad).Activate(req.URI) })
		if err != nil {
			// Reported for the operator; hosts show nothing to the user.
			log.Printf("[ERROR] Bridge %s: activation failed: %v", connID, err)
			return Response{Error: err.Error()}
		}
		return Response{OK: true}

	case RequestShortcut:
		var (
			accel Accel
			ok    bool
		)
		s.app.Do(func() { accel, ok = (*ad).Shortcut() })
		if !ok {
			return Response{Error: "no shortcut surface for this host"}
		}
		return Response{OK: true, Accel: &accel}

	default:
		return Response{Error: fmt.Sprintf("unknown request type %q", req.Type)}
	}
}

// adapterFor picks the surface for the announced host API generation. Hosts
// at generation 4 and later bind keyboard shortcuts themselves; older hosts
// get the shortcut surface on top of the menu one.
func (s *Server) adapterFor(apiVersion int) adapter {
	base := menuAdapter{app: s.app, provider: s.provider}
	if apiVersion >= 4 {
		return &base
	}
	return &shortcutAdapter{menuAdapter: base}
}

package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/settings"
	"github.com/openanyterminal/linux/pkg/terminal"
)

// debugLog logs debug messages only if OAT_DEBUG is set
func debugLog(format string, args ...interface{}) {
	if os.Getenv("OAT_DEBUG") != "" {
		log.Printf(format, args...)
	}
}

// DefaultAddr is where the control API listens unless overridden. Loopback
// only; the API is a local scripting surface, not a network service.
const DefaultAddr = "127.0.0.1:4097"

// Server is the local control API: a small HTTP surface for inspecting the
// registry and the active configuration and for scripted launches.
type Server struct {
	app      *launcher.App
	password string
}

// NewServer creates a control API server around the application context. A
// non-empty password puts every /api route behind basic auth.
func NewServer(app *launcher.App, password string) *Server {
	return &Server{
		app:      app,
		password: password,
	}
}

// Start serves the API on addr until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.createHandler(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down control API...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Printf("[INFO] Control API listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) createHandler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	if s.password != "" {
		api.Use(s.basicAuthMiddleware)
	}

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/terminals", s.handleListTerminals).Methods("GET")
	api.HandleFunc("/config", s.handleGetConfig).Methods("GET")
	api.HandleFunc("/launch", s.handleLaunch).Methods("POST")

	return r
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			s.unauthorized(w)
			return
		}

		const prefix = "Basic "
		if !strings.HasPrefix(auth, prefix) {
			s.unauthorized(w)
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
		if err != nil {
			s.unauthorized(w)
			return
		}

		parts := strings.SplitN(string(decoded), ":", 2)
		if len(parts) != 2 || parts[0] != "admin" || parts[1] != s.password {
			s.unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="open-any-terminal"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// terminalInfo is one registry entry in API form.
type terminalInfo struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	SupportsTabs    bool   `json:"supportsTabs"`
	SupportsWorkdir bool   `json:"supportsWorkdir"`
	FlatpakID       string `json:"flatpakId,omitempty"`
}

func (s *Server) handleListTerminals(w http.ResponseWriter, r *http.Request) {
	ids := terminal.Identifiers()
	infos := make([]terminalInfo, 0, len(ids))
	for _, id := range ids {
		spec, _ := terminal.Lookup(id)
		infos = append(infos, terminalInfo{
			ID:              id,
			DisplayName:     spec.DisplayName,
			SupportsTabs:    spec.SupportsTabs(),
			SupportsWorkdir: spec.SupportsWorkdir(),
			FlatpakID:       spec.FlatpakID,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

// configResponse is the active configuration in API form.
type configResponse struct {
	Terminal      string            `json:"terminal"`
	DisplayName   string            `json:"displayName"`
	CommandPrefix []string          `json:"commandPrefix"`
	PreferNewTab  bool              `json:"preferNewTab"`
	FlatpakMode   string            `json:"flatpakMode"`
	Status        string            `json:"status"`
	Settings      settings.Settings `json:"settings"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	var resp configResponse
	s.app.Do(func() {
		cur := s.app.Current()
		resp = configResponse{
			Terminal:      cur.Terminal,
			DisplayName:   cur.Spec.DisplayName,
			CommandPrefix: cur.CommandPrefix,
			PreferNewTab:  cur.PreferNewTab,
			FlatpakMode:   cur.FlatpakMode,
			Status:        cur.Status,
			Settings:      s.app.Settings.Values,
		}
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URI string `json:"uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body. Expected JSON with a 'uri' field", http.StatusBadRequest)
		return
	}
	if req.URI == "" {
		http.Error(w, "Missing 'uri' field", http.StatusBadRequest)
		return
	}

	id := uuid.New().String()
	debugLog("[DEBUG] API: launch %s uri=%s", id, req.URI)

	var err error
	s.app.Do(func() { err = s.app.OpenURI(req.URI) })
	if err != nil {
		log.Printf("[ERROR] API: launch %s failed: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok": true,
		"id": id,
	})
}

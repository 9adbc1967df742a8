// server.go — HTTP server exposing olo-documents.
//
// Routes:
//
//	GET    /<path>           render the document (raw source with ?source)
//	PUT    /<path>           write the request body as the document source
//	DELETE /<path>           delete the document
//	GET    /-/watch          websocket; pushes {"path": …} on every write
//	                         or delete that goes through this server
//
// The server renders with a fresh scope per request, seeded with the
// loader's 'require' and a __path__ global naming the rendered document.
package olojs

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"gopkg.in/yaml.v3"
)

// Server serves the documents of a store over HTTP.
type Server struct {
	store  Store
	loader *Loader
	logger *log.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	watchers map[*websocket.Conn]bool
}

// NewServer wraps a store. A nil logger discards nothing — it falls back
// to the standard logger.
func NewServer(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    store,
		loader:   NewLoader(store),
		logger:   logger,
		watchers: map[*websocket.Conn]bool{},
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/-/watch", s.handleWatch)
	mux.HandleFunc("/", s.handleDocument)
	return mux
}

// ListenAndServe runs the server at addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Printf("olojs server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	p := NormalizePath(r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		s.serveGet(w, r, p)
	case http.MethodPut:
		s.servePut(w, r, p)
	case http.MethodDelete:
		s.serveDelete(w, r, p)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) serveGet(w http.ResponseWriter, r *http.Request, p string) {
	src, err := s.store.Read(r.Context(), p)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Printf("read %s: %v", p, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if r.URL.Query().Has("source") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, src)
		return
	}

	doc, err := ParseDocument(src)
	if err != nil {
		http.Error(w, WrapErrorWithName(err, p, src).Error(), http.StatusUnprocessableEntity)
		return
	}
	globals := s.loader.Globals()
	globals["__path__"] = String(p)
	text, err := doc.Render(r.Context(), NewScope(globals))
	if err != nil {
		s.logger.Printf("render %s: %v", p, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, text)
}

func (s *Server) servePut(w http.ResponseWriter, r *http.Request, p string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = s.store.Write(r.Context(), p, string(body))
	if errors.Is(err, ErrReadOnly) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.notify(p)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serveDelete(w http.ResponseWriter, r *http.Request, p string) {
	err := s.store.Delete(r.Context(), p)
	switch {
	case errors.Is(err, ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, ErrReadOnly):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.notify(p)
	w.WriteHeader(http.StatusNoContent)
}

// ----- watch -----

type watchEvent struct {
	Path string `json:"path"`
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.watchers[conn] = true
	s.mu.Unlock()

	// reader loop only detects the peer going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.mu.Lock()
		delete(s.watchers, conn)
		s.mu.Unlock()
		conn.Close()
	}()
}

func (s *Server) notify(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.watchers {
		if err := conn.WriteJSON(watchEvent{Path: p}); err != nil {
			delete(s.watchers, conn)
			conn.Close()
		}
	}
}

// ----- configuration -----

// MountConfig declares one router mount.
type MountConfig struct {
	Path   string `yaml:"path"`
	Type   string `yaml:"type"`   // memory | file | http | bolt
	Target string `yaml:"target"` // directory, base URL or database file
}

// ServerConfig is the YAML configuration of 'olo serve'.
type ServerConfig struct {
	Address string        `yaml:"address"`
	Mounts  []MountConfig `yaml:"mounts"`
}

// LoadServerConfig reads and decodes a YAML config file.
func LoadServerConfig(file string) (*ServerConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &ServerConfig{Address: ":8010"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildRouter assembles the configured mount table.
func (cfg *ServerConfig) BuildRouter() (*Router, error) {
	router := NewRouter()
	for _, m := range cfg.Mounts {
		var store Store
		switch strings.ToLower(m.Type) {
		case "", "memory":
			store = NewMemoryStore(nil)
		case "file":
			store = NewFileStore(m.Target)
		case "http":
			store = NewHTTPStore(m.Target)
		case "bolt":
			bs, err := NewBoltStore(m.Target)
			if err != nil {
				return nil, err
			}
			store = bs
		default:
			return nil, errors.New("unknown store type: " + m.Type)
		}
		router.Mount(m.Path, store)
	}
	return router, nil
}

// Package httpapi exposes the annotation service over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redlinehq/redline/internal/core/ports/driving"
	"github.com/redlinehq/redline/internal/logger"
)

// Server serves the annotation CRUD API. It starts a local HTTP server
// and shuts it down gracefully on Stop.
type Server struct {
	mu          sync.Mutex
	addr        string
	annotations driving.AnnotationService
	workspace   driving.WorkspaceService
	server      *http.Server
	listener    net.Listener
}

// NewServer creates a new API server. If addr is empty the server
// listens on 127.0.0.1 with a random port.
func NewServer(addr string, annotations driving.AnnotationService, workspace driving.WorkspaceService) *Server {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	return &Server{
		addr:        addr,
		annotations: annotations,
		workspace:   workspace,
	}
}

// Start begins listening and serving in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.server = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("api server: %v", err)
		}
	}()

	logger.Info("annotation API listening on %s", listener.Addr())
	return nil
}

// Stop shuts down the server, letting in-flight requests finish.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// routes builds the API route table.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/annotations", s.handleList)
	mux.HandleFunc("POST /api/annotations", s.handleCreate)
	mux.HandleFunc("GET /api/annotations/{id}", s.handleGet)
	mux.HandleFunc("PUT /api/annotations/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/annotations/{id}", s.handleDelete)
	mux.HandleFunc("GET /api/workspace/recent", s.handleRecentFiles)
	mux.HandleFunc("POST /api/workspace/recent", s.handleTouchRecent)
	mux.HandleFunc("GET /api/workspace/tree", s.handleFileTree)
	mux.HandleFunc("PUT /api/workspace/tree", s.handleSaveFileTree)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

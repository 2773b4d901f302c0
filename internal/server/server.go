package server

import (
	"context"
	"net/http"
	"time"

	"github.com/finlog/finlog-be/internal/auth"
	"github.com/finlog/finlog-be/internal/config"
	"github.com/finlog/finlog-be/internal/http/handlers"
	"github.com/finlog/finlog-be/internal/middleware"
	"github.com/finlog/finlog-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()

	creds := auth.NewCredentials(cfg.BcryptCost)
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewUserHandler(store, creds).Register(mux)
	handlers.NewTransactionHandler(store, store).Register(mux)
	handlers.NewItemHandler(store, store).Register(mux)
	(&handlers.RootHandler{}).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

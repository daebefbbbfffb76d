// Package server provides the HTTP server setup for go-pdfbinder.
//
// NewServer creates and configures the HTTP server, session manager, default
// output folder and bookmark rows.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - The default output folder exists
// - Idle sessions are cleaned up periodically
//
// Usage:
//
//	srv, err := server.NewServer(cfg)
//	srv.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go-pdfbinder/internal/config"
	"go-pdfbinder/internal/handlers"
	"go-pdfbinder/internal/session"
)

const sessionMaxAge = 2 * time.Hour

type Server struct {
	port           int
	SessionManager *session.SessionManager
	Handler        *handlers.APIHandler
}

func New(cfg config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	rows, err := cfg.BookmarkRows()
	if err != nil {
		return nil, err
	}

	sm := session.NewSessionManager()
	return &Server{
		port:           cfg.Port,
		SessionManager: sm,
		Handler:        handlers.NewAPIHandler(sm, cfg.OutputDir, rows, cfg.LogLimit),
	}, nil
}

// NewServer wraps New in an http.Server and starts the session janitor.
func NewServer(cfg config.Config) (*http.Server, *Server, error) {
	srv, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Cleanup goroutine for idle sessions
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := srv.SessionManager.Expire(sessionMaxAge); n > 0 {
				log.Printf("Expired %d idle sessions", n)
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, srv, nil
}

// Package server sets up the HTTP server and registers API routes for go-pdfbinder.
//
// RegisterRoutes returns an http.Handler with all API endpoints for sessions,
// bookmark editing, batch runs and the progress log.
//
// Expected outputs:
// - All API endpoints are available under /api/sessions
// - CORS and logging middleware are enabled
package server

import (
	"net"
	"net/http"

	_ "go-pdfbinder/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)
	h := s.Handler
	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", h.CreateSession)
		api.Get("/{sessionID}", h.GetSession)
		api.Put("/{sessionID}/folders", h.UpdateFolders)
		api.Post("/{sessionID}/bookmarks", h.AddBookmark)
		api.Delete("/{sessionID}/bookmarks/{rowID}", h.RemoveBookmark)
		api.Post("/{sessionID}/actions/run", h.RunBatch)
		api.Post("/{sessionID}/actions/cancel", h.CancelRun)
		api.Get("/{sessionID}/log", h.GetLog)
	})

	return r
}

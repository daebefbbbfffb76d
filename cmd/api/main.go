// Package main API.
//
// go-pdfbinder serves the operator shell of the PDF binder: it merges the PDFs
// of every folder in a tree and stamps a bookmark outline onto each result.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-pdfbinder/internal/config"
	"go-pdfbinder/internal/server"
)

func gracefulShutdown(apiServer *http.Server, srv *server.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	// Running batches stop after their current folder
	log.Println("Cancelling running batches")
	srv.SessionManager.Mutex.RLock()
	for _, s := range srv.SessionManager.Sessions {
		s.Cleanup()
	}
	srv.SessionManager.Mutex.RUnlock()
	srv.Handler.Wait()

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	log.Println("Starting server")

	apiServer, srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("server setup error: %v", err)
	}
	log.Printf("Default output folder: %s", cfg.OutputDir)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, srv, done)

	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server error: %s", err)
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")
}

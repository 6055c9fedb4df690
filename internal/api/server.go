package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server wraps an http.Server configured with the planner's router,
// providing the same graceful-shutdown sequence as the teacher's
// cmd/server/main.go.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a Server listening on port, dispatching into handlers
// behind auth.
func NewServer(port int, handlers *Handlers, auth *AuthMiddleware) *Server {
	r := NewRouter(handlers, auth)
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM triggers a
// graceful shutdown.
func (s *Server) Run() error {
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.httpServer.SetKeepAlivesEnabled(false)
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("could not gracefully shut down the server: %v", err)
		}
		close(done)
	}()

	log.Printf("planner server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-done
	log.Println("server stopped")
	return nil
}

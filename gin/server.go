// Package gin exposes the article workflow as a JSON HTTP API built on
// github.com/gin-gonic/gin.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/referent"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	Parser      referent.ArticleParser
	Processor   referent.Processor
	Illustrator referent.Illustrator

	// Publisher is optional. The publish endpoint is only registered
	// when it is set.
	Publisher referent.Publisher

	Logger *slog.Logger

	// Dev adds raw upstream error payloads to error responses.
	Dev bool
}

// Handler returns the router with all routes and middleware registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.logRequests())

	r.GET("/health", handleHealth)

	api := r.Group("/api")
	api.POST("/parse", s.handleParse)
	api.POST("/ai-process", s.handleProcess)
	api.POST("/translate", s.handleTranslate)
	api.POST("/generate-image-prompt", s.handleImagePrompt)
	api.POST("/generate-image", s.handleImage)
	if s.Publisher != nil {
		api.POST("/publish", s.handlePublish)
	}
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger().Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

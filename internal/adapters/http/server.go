// Package http serves the quoting API over gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoting-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
)

// Server is the quoting API listener. Routes are registered on Engine by
// SetupRouter before Start.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.ServerConfig
	logger     *slog.Logger
}

// New builds the listener from cfg. Every request body is capped at
// cfg.MaxRequestSize, which bounds the size of a quote payload.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(maxBodySize(cfg.MaxRequestSize))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		engine:     engine,
		httpServer: httpServer,
		config:     cfg,
		logger:     logger,
	}
}

// Engine returns the gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Config returns the settings the listener was built from.
func (s *Server) Config() *config.ServerConfig {
	return s.config
}

// Start serves in the background. The returned channel receives a
// ListenAndServe failure and is closed when the server stops.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("quoting API listening",
			slog.String("addr", s.httpServer.Addr),
			slog.Int64("max_request_size", s.config.MaxRequestSize),
			slog.Duration("read_timeout", s.config.ReadTimeout),
			slog.Duration("write_timeout", s.config.WriteTimeout),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("quoting API listener: %w", err)
		}

		close(errCh)
	}()

	return errCh
}

// Shutdown waits for in-flight requests, bounded by ctx. A quote that is
// mid fan-out finishes and persists before the server stops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("draining quote requests")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("draining quote requests: %w", err)
	}

	s.logger.Info("quoting API stopped")

	return nil
}

// Addr returns the configured host:port.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// maxBodySize caps request bodies at maxBytes. A quote whose declared
// Content-Length is already over the cap is refused with 413 before it is
// read; an undeclared oversized body fails binding instead.
func maxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				dto.ErrorCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxBytes),
			).WithTraceID(dto.GetTraceID(c)))

			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

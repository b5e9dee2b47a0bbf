// Copyright 2025 Amazee Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AmazeeLabs/chat-ai/chat"
)

// Answerer produces the final HTML answer for a question, logged under
// userID. Implemented by the root Assistant.
type Answerer interface {
	Answer(ctx context.Context, userID, question, langcode string, turns []chat.Turn) (string, error)
}

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// AllowedOrigins are the origins permitted to call the completion
	// endpoint. Requests from anywhere else are rejected with 403.
	AllowedOrigins []string
}

// Server exposes the chat completion endpoint.
type Server struct {
	config   Config
	answerer Answerer
	engine   *gin.Engine
	logger   *slog.Logger
}

// New creates a configured server.
func New(config Config, answerer Answerer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   config,
		answerer: answerer,
		logger:   logger.With("component", "server"),
	}
	s.engine = s.buildRouter()
	return s
}

// Handler returns the HTTP handler, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.config.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", s.healthCheck)
	router.POST("/chat/completion", s.requireAllowedOrigin(), s.chatCompletion)

	return router
}

// requestID tags every request with an id for log correlation.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requireAllowedOrigin rejects callers whose origin is not in the
// allow-list. Requests without an Origin header fall back to the client
// address, which keeps direct curl access working in development when
// the loopback host is allow-listed.
func (s *Server) requireAllowedOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := originHost(c.GetHeader("Origin"))
		if caller == "" {
			caller = c.ClientIP()
		}

		for _, allowed := range s.config.AllowedOrigins {
			if allowed == "*" || originHost(allowed) == caller {
				c.Next()
				return
			}
		}

		s.logger.Warn("request from origin not allowed", "origin", caller)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Origin not allowed",
		})
	}
}

// originHost extracts the host part of an origin value. Values without a
// scheme pass through unchanged.
func originHost(origin string) string {
	if origin == "" {
		return ""
	}
	if strings.Contains(origin, "://") {
		if u, err := url.Parse(origin); err == nil {
			return u.Hostname()
		}
	}
	if host, _, err := net.SplitHostPort(origin); err == nil {
		return host
	}
	return origin
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

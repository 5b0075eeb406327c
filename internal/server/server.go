// Package server exposes the knowledge base, story expansion and the story
// archive over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storyforge/internal/archive"
	"storyforge/internal/generation"
	"storyforge/internal/knowledge"
)

// StoryArchive is the storage used by the /api/stories endpoints.
type StoryArchive interface {
	Create(ctx context.Context, content string) (*archive.Story, error)
	Get(ctx context.Context, id string) (*archive.Story, error)
	Append(ctx context.Context, id, content string) (*archive.Story, error)
	Delete(ctx context.Context, id string) error
	Cleanup(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	TTL() time.Duration
}

// Deps are the collaborators behind the HTTP API. Expander and Archive may be nil;
// their endpoints then answer 503.
type Deps struct {
	Knowledge *knowledge.Provider
	Expander  *generation.Expander
	Archive   StoryArchive
	PublicDir string
}

// Server is the HTTP API.
type Server struct {
	echo    *echo.Echo
	deps    Deps
	started time.Time
}

// New builds the echo instance and registers every route.
func New(deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("50M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[server] %s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	s := &Server{echo: e, deps: deps, started: time.Now()}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/api/health", s.Health)
	e.GET("/knowledge-stats", s.KnowledgeStats)
	e.POST("/context", s.Context)
	e.POST("/expand-story", s.ExpandStory)

	e.POST("/api/stories", s.CreateStory)
	e.GET("/api/stories", s.GetStory)
	e.DELETE("/api/stories", s.DeleteStory)
	e.POST("/api/stories/append", s.AppendStory)
	e.GET("/api/cleanup", s.Cleanup)

	if dir := s.deps.PublicDir; dir != "" {
		if _, err := os.Stat(dir); err != nil {
			log.Printf("[server] WARN: public dir %s not found: %v", dir, err)
		} else {
			e.Static("/", dir)
		}
	}
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	log.Printf("[server] listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func errorJSON(c echo.Context, status int, msg string, err error) error {
	body := map[string]any{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	return c.JSON(status, body)
}

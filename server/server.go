// Package server exposes the idea tracker over a JSON HTTP API.
package server

import (
	"context"
	"net/http"

	"github.com/existflow/ideaful/internal/app"
	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API
type Server struct {
	app       *app.App
	echo      *echo.Echo
	tokenHash string
	log       *logger.Logger
}

// New creates a server over an opened app. An empty tokenHash leaves the API open.
func New(a *app.App, tokenHash string, log *logger.Logger) *Server {
	s := &Server{
		app:       a,
		tokenHash: tokenHash,
		log:       log.WithFields(logger.F("component", "server")),
	}

	a.Evaluator.OnUnlock(func(ach model.Achievement) {
		AchievementsUnlocked.WithLabelValues(ach.ID).Inc()
	})

	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	e.Use(s.logRequests)
	e.Use(metricsMiddleware)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.Use(s.authMiddleware)

	api.GET("/statuses", s.handleListStatuses)
	api.PUT("/statuses/:name", s.handleSetStatusEnabled)
	api.POST("/statuses/repair", s.handleRepairStatuses)

	api.GET("/tags", s.handleListTags)
	api.POST("/tags", s.handleCreateTag)
	api.POST("/tags/apply", s.handleApplyTags)
	api.PATCH("/tags/:id", s.handleUpdateTag)
	api.DELETE("/tags/:id", s.handleDeleteTag)
	api.GET("/tags/:id/ideas", s.handleTagIdeas)

	api.GET("/ideas", s.handleListIdeas)
	api.POST("/ideas", s.handleCreateIdea)
	api.GET("/ideas/:id", s.handleGetIdea)
	api.PATCH("/ideas/:id", s.handleUpdateIdea)
	api.DELETE("/ideas/:id", s.handleDeleteIdea)
	api.PUT("/ideas/:id/status", s.handleSetIdeaStatus)
	api.PUT("/ideas/:id/images", s.handleSetIdeaImages)
	api.GET("/ideas/:id/tags", s.handleIdeaTags)
	api.POST("/ideas/:id/tags", s.handleAttachTags)
	api.DELETE("/ideas/:id/tags", s.handleDetachTags)

	api.GET("/ideas/:id/tasks", s.handleListTasks)
	api.POST("/ideas/:id/tasks", s.handleAddTask)
	api.PUT("/tasks/:id/completed", s.handleSetTaskCompleted)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/ideas/:id/notes", s.handleListNotes)
	api.POST("/ideas/:id/notes", s.handleAddNote)
	api.DELETE("/notes/:id", s.handleDeleteNote)

	api.GET("/stats", s.handleStats)
	api.GET("/achievements", s.handleAchievements)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	s.log.Info("Server listening", logger.F("addr", addr), logger.F("auth", s.tokenHash != ""))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.app.DB.PingContext(c.Request().Context()); err != nil {
		s.log.Error("Health check failed", logger.F("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

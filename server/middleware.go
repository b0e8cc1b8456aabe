package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/existflow/ideaful/internal/logger"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// logRequests logs every request with its outcome
func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		s.log.Debug("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr))

		err := next(c)

		res := c.Response()
		s.log.Info("HTTP Response",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

// authMiddleware checks the bearer token against the configured bcrypt hash
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.tokenHash == "" {
			return next(c)
		}

		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			AuthAttempts.WithLabelValues("missing").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization required"})
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			AuthAttempts.WithLabelValues("malformed").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization format"})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(s.tokenHash), []byte(token)); err != nil {
			AuthAttempts.WithLabelValues("failure").Inc()
			s.log.Warn("Rejected API token", logger.F("remote", c.RealIP()))
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}

		AuthAttempts.WithLabelValues("success").Inc()
		return next(c)
	}
}

package server

import (
	"errors"
	"net/http"

	"github.com/existflow/ideaful/internal/logger"
	"github.com/existflow/ideaful/internal/model"
	"github.com/existflow/ideaful/internal/tags"
	"github.com/labstack/echo/v4"
)

// fail writes the JSON error response for err
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		ErrorsTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})

	case errors.Is(err, tags.ErrDuplicateName), errors.Is(err, model.ErrConflict):
		ErrorsTotal.WithLabelValues("conflict").Inc()
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})

	case model.IsValidation(err):
		ErrorsTotal.WithLabelValues("validation").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ErrorsTotal.WithLabelValues("internal").Inc()
	s.log.Error("Request failed",
		logger.F("method", c.Request().Method),
		logger.F("path", c.Path()),
		logger.F("error", err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// bind decodes the request body into req and runs its validate tags
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return model.NewValidationError("", "invalid request body")
	}
	return c.Validate(req)
}

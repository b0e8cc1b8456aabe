package server

import (
	"net/http"
	"net/url"

	"github.com/existflow/ideaful/internal/status"
	"github.com/labstack/echo/v4"
)

type statusResponse struct {
	status.Status
	Enabled bool `json:"enabled"`
	InUse   bool `json:"in_use"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func (s *Server) handleListStatuses(c echo.Context) error {
	inUse, err := s.app.DB.StatusesInUse(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	used := make(map[string]bool, len(inUse))
	for _, name := range inUse {
		used[name] = true
	}

	all := s.app.Statuses.ListAll()
	out := make([]statusResponse, 0, len(all))
	for _, st := range all {
		out = append(out, statusResponse{
			Status:  st,
			Enabled: s.app.Statuses.IsEnabled(st.Name),
			InUse:   used[st.Name],
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSetStatusEnabled(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	var req setEnabledRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	result, err := s.app.Statuses.SetEnabled(c.Request().Context(), name, *req.Enabled)
	if err != nil {
		return s.fail(c, err)
	}
	StatusToggles.WithLabelValues(result.String()).Inc()

	code := http.StatusOK
	if result != status.Applied {
		code = http.StatusConflict
	}
	return c.JSON(code, map[string]any{
		"status":  name,
		"enabled": s.app.Statuses.IsEnabled(name),
		"result":  result.String(),
	})
}

func (s *Server) handleRepairStatuses(c echo.Context) error {
	n, err := s.app.Statuses.RepairInvalidStatuses(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"repaired": n})
}

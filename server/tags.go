package server

import (
	"net/http"

	"github.com/existflow/ideaful/internal/model"
	"github.com/labstack/echo/v4"
)

type createTagRequest struct {
	Name  string `json:"name" validate:"notblank"`
	Color string `json:"color"`
}

type updateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type applyTagsRequest struct {
	IdeaIDs []string `json:"idea_ids" validate:"required,min=1"`
	TagIDs  []string `json:"tag_ids" validate:"required,min=1"`
}

type tagResponse struct {
	model.Tag
	Ideas int64 `json:"ideas"`
}

func (s *Server) handleListTags(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := s.app.Tags.ListTags(ctx)
	if err != nil {
		return s.fail(c, err)
	}

	out := make([]tagResponse, 0, len(list))
	for _, t := range list {
		n, err := s.app.Tags.CountIdeas(ctx, t.ID)
		if err != nil {
			return s.fail(c, err)
		}
		out = append(out, tagResponse{Tag: t, Ideas: n})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTag(c echo.Context) error {
	var req createTagRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	tag, err := s.app.Tags.CreateTag(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(c echo.Context) error {
	var req updateTagRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if req.Name == nil && req.Color == nil {
		return s.fail(c, model.NewValidationError("", "nothing to update"))
	}

	tag, err := s.app.Tags.Update(c.Request().Context(), c.Param("id"), req.Name, req.Color)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := s.app.Tags.GetTag(ctx, id); err != nil {
		return s.fail(c, err)
	}
	if err := s.app.Tags.DeleteTag(ctx, id); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleTagIdeas(c echo.Context) error {
	list, err := s.app.Tags.IdeasForTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if list == nil {
		list = []model.Idea{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleApplyTags(c echo.Context) error {
	var req applyTagsRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.app.Tags.ApplyTagsToIdeas(c.Request().Context(), req.IdeaIDs, req.TagIDs); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"ideas": len(req.IdeaIDs), "tags": len(req.TagIDs)})
}

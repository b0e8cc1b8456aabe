package server

import (
	"net/http"

	"github.com/existflow/ideaful/internal/ideas"
	"github.com/existflow/ideaful/internal/model"
	"github.com/labstack/echo/v4"
)

type ideaResponse struct {
	model.Idea
	Tags []model.Tag `json:"tags"`
}

type setIdeaStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

type setImagesRequest struct {
	ImagePaths []string `json:"image_paths" validate:"max=10"`
}

type tagIDsRequest struct {
	TagIDs []string `json:"tag_ids" validate:"required,min=1"`
}

type setCompletedRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// ?status=Planning&tag=<id>&tag=<id>
func (s *Server) handleListIdeas(c echo.Context) error {
	filter := ideas.Filter{
		Status: c.QueryParam("status"),
		TagIDs: c.QueryParams()["tag"],
	}
	list, err := s.app.Ideas.List(c.Request().Context(), filter)
	if err != nil {
		return s.fail(c, err)
	}
	if list == nil {
		list = []model.Idea{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateIdea(c echo.Context) error {
	var req ideas.NewIdea
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	idea, err := s.app.Ideas.Create(c.Request().Context(), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, idea)
}

func (s *Server) handleGetIdea(c echo.Context) error {
	ctx := c.Request().Context()
	idea, err := s.app.Ideas.Get(ctx, c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	tags, err := s.app.Tags.TagsForIdea(ctx, idea.ID)
	if err != nil {
		return s.fail(c, err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return c.JSON(http.StatusOK, ideaResponse{Idea: idea, Tags: tags})
}

func (s *Server) handleUpdateIdea(c echo.Context) error {
	var req ideas.IdeaUpdate
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	idea, err := s.app.Ideas.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (s *Server) handleDeleteIdea(c echo.Context) error {
	if err := s.app.Ideas.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSetIdeaStatus(c echo.Context) error {
	var req setIdeaStatusRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	idea, err := s.app.Ideas.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (s *Server) handleSetIdeaImages(c echo.Context) error {
	var req setImagesRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	idea, err := s.app.Ideas.SetImages(c.Request().Context(), c.Param("id"), req.ImagePaths)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, idea)
}

func (s *Server) handleIdeaTags(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := s.app.Ideas.Get(ctx, id); err != nil {
		return s.fail(c, err)
	}
	tags, err := s.app.Tags.TagsForIdea(ctx, id)
	if err != nil {
		return s.fail(c, err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) handleAttachTags(c echo.Context) error {
	var req tagIDsRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.app.Tags.AttachTags(c.Request().Context(), c.Param("id"), req.TagIDs); err != nil {
		return s.fail(c, err)
	}
	return s.handleIdeaTags(c)
}

func (s *Server) handleDetachTags(c echo.Context) error {
	var req tagIDsRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.app.Tags.DetachTags(c.Request().Context(), c.Param("id"), req.TagIDs); err != nil {
		return s.fail(c, err)
	}
	return s.handleIdeaTags(c)
}

func (s *Server) handleListTasks(c echo.Context) error {
	list, err := s.app.Ideas.ListTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if list == nil {
		list = []model.Task{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleAddTask(c echo.Context) error {
	var req ideas.NewTask
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	task, err := s.app.Ideas.AddTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleSetTaskCompleted(c echo.Context) error {
	var req setCompletedRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	task, err := s.app.Ideas.SetTaskCompleted(c.Request().Context(), c.Param("id"), *req.Completed)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.app.Ideas.DeleteTasks(c.Request().Context(), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListNotes(c echo.Context) error {
	list, err := s.app.Ideas.ListNotes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if list == nil {
		list = []model.Note{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleAddNote(c echo.Context) error {
	var req ideas.NewNote
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	note, err := s.app.Ideas.AddNote(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(c echo.Context) error {
	if err := s.app.Ideas.DeleteNote(c.Request().Context(), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleStats(c echo.Context) error {
	st, err := s.app.Evaluator.Snapshot(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) handleAchievements(c echo.Context) error {
	list, err := s.app.Evaluator.Achievements(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

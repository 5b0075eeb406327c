package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"storyforge/internal/archive"
)

type createStoryReq struct {
	Content string `json:"content"`
}

type appendStoryReq struct {
	StoryID     string `json:"storyId"`
	Content     string `json:"content"`
	ChunkIndex  *int   `json:"chunkIndex"`
	IsLastChunk bool   `json:"isLastChunk"`
}

// CreateStory saves a story and returns its id and expiry.
func (s *Server) CreateStory(c echo.Context) error {
	if s.deps.Archive == nil {
		return archiveUnavailable(c)
	}
	var req createStoryReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json", err)
	}
	if req.Content == "" {
		return errorJSON(c, http.StatusBadRequest, "Story content is required", nil)
	}

	st, err := s.deps.Archive.Create(c.Request().Context(), req.Content)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save story", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"storyId":   st.ID,
		"message":   fmt.Sprintf("Story saved successfully. It will expire in %d hours.", int(s.deps.Archive.TTL().Hours())),
		"expiresAt": st.ExpiresAt.UnixMilli(),
	})
}

// GetStory returns a live story by id.
func (s *Server) GetStory(c echo.Context) error {
	if s.deps.Archive == nil {
		return archiveUnavailable(c)
	}
	id := c.QueryParam("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "Story ID is required", nil)
	}

	st, err := s.deps.Archive.Get(c.Request().Context(), id)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Story not found", nil)
	case errors.Is(err, archive.ErrExpired):
		return errorJSON(c, http.StatusNotFound, "Story has expired", nil)
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "Failed to retrieve story", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"story": map[string]any{
			"id":        st.ID,
			"content":   st.Content,
			"timestamp": st.CreatedAt.UnixMilli(),
			"expiresAt": st.ExpiresAt.UnixMilli(),
		},
	})
}

// DeleteStory removes a story by id.
func (s *Server) DeleteStory(c echo.Context) error {
	if s.deps.Archive == nil {
		return archiveUnavailable(c)
	}
	id := c.QueryParam("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "Story ID is required", nil)
	}
	if err := s.deps.Archive.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete story", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Story deleted successfully",
	})
}

// AppendStory appends one chunk of content to an existing story.
func (s *Server) AppendStory(c echo.Context) error {
	if s.deps.Archive == nil {
		return archiveUnavailable(c)
	}
	var req appendStoryReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json", err)
	}
	if req.Content == "" || req.StoryID == "" {
		return errorJSON(c, http.StatusBadRequest, "Story content and storyId are required", nil)
	}

	_, err := s.deps.Archive.Append(c.Request().Context(), req.StoryID, req.Content)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Story not found", nil)
	case errors.Is(err, archive.ErrExpired):
		return errorJSON(c, http.StatusNotFound, "Story has expired", nil)
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "Failed to append to story", err)
	}

	chunk := "unknown"
	if req.ChunkIndex != nil {
		chunk = fmt.Sprint(*req.ChunkIndex)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"storyId":    req.StoryID,
		"message":    fmt.Sprintf("Chunk %s appended successfully.", chunk),
		"isComplete": req.IsLastChunk,
	})
}

// Cleanup removes expired stories.
func (s *Server) Cleanup(c echo.Context) error {
	if s.deps.Archive == nil {
		return archiveUnavailable(c)
	}
	n, err := s.deps.Archive.Cleanup(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to complete cleanup", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("Cleanup completed. Deleted %d expired stories.", n),
		"deletedCount": n,
	})
}

func archiveUnavailable(c echo.Context) error {
	return errorJSON(c, http.StatusServiceUnavailable, "Story archive is not configured", nil)
}

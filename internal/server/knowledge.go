package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"storyforge/internal/generation"
)

type contextReq struct {
	Prompt string `json:"prompt"`
}

type expandReq struct {
	StoryPrompt  string                   `json:"story_prompt"`
	CustomPrompt *generation.CustomPrompt `json:"custom_prompt"`
}

// Health reports uptime, knowledge base availability and the archive database.
func (s *Server) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	kbCheck := sub{}
	if s.deps.Knowledge != nil {
		_, kbCheck.OK = s.deps.Knowledge.Get()
		if err := s.deps.Knowledge.Err(); err != nil {
			kbCheck.Err = err.Error()
		}
	} else {
		kbCheck.Err = "knowledge base not configured"
	}

	dbCheck := sub{}
	if s.deps.Archive != nil {
		if err := s.deps.Archive.Ping(ctx); err != nil {
			dbCheck.Err = "ping: " + err.Error()
		} else {
			dbCheck.OK = true
		}
	} else {
		dbCheck.Err = "archive not configured"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":     "OK",
		"uptime_sec": int(time.Since(s.started).Seconds()),
		"checks": map[string]any{
			"knowledge_base": kbCheck,
			"database":       dbCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

// KnowledgeStats returns the knowledge base statistics, or 503 when it could not be built.
func (s *Server) KnowledgeStats(c echo.Context) error {
	if s.deps.Knowledge == nil {
		return s.kbUnavailable(c)
	}
	kb, ok := s.deps.Knowledge.Get()
	if !ok {
		return s.kbUnavailable(c)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"knowledge_base": kb.Stats(),
		"stories":        kb.Stories(),
		"description":    "Statistics from the story corpus used for retrieval context generation",
	})
}

func (s *Server) kbUnavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]any{
		"error":   "Knowledge base not available",
		"message": "The knowledge base could not be initialized",
	})
}

// Context previews the reference context that would accompany a prompt.
func (s *Server) Context(c echo.Context) error {
	var req contextReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json", err)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing required field: prompt", nil)
	}
	if s.deps.Knowledge == nil {
		return s.kbUnavailable(c)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"context": s.deps.Knowledge.Context(req.Prompt),
	})
}

// ExpandStory generates a long-form story from story_prompt.
func (s *Server) ExpandStory(c echo.Context) error {
	var req expandReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json", err)
	}
	if strings.TrimSpace(req.StoryPrompt) == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing required field: story_prompt", nil)
	}
	if s.deps.Expander == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "Story generation is not configured", nil)
	}

	out, err := s.deps.Expander.Expand(c.Request().Context(), req.StoryPrompt, req.CustomPrompt)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to expand story", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":           true,
		"expanded_story":    out.Story,
		"word_count":        out.WordCount,
		"opening_preserved": out.OpeningPreserved,
		"model":             out.Model,
	})
}

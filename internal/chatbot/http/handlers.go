package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/repository"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/service"
)

// Handler bundles the dependencies for chatbot HTTP endpoints.
type Handler struct {
	svc  *service.ChatService
	logs *repository.ChatLogRepository
}

func New(svc *service.ChatService, logs *repository.ChatLogRepository) *Handler {
	return &Handler{svc: svc, logs: logs}
}

type chatReq struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		// First message of a visit; the client is expected to echo this back.
		sessionID = uuid.New().String()
	}

	reply, err := h.svc.Handle(c.Request.Context(), req.Query, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok": false, "error": "validation failed",
				"fields": gin.H{"query": "required"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"response":   reply.Response,
		"language":   reply.Language,
		"fallback":   reply.Fallback,
		"session_id": sessionID,
	})
}

func (h *Handler) history(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("session_id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing session id"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed",
				"fields": gin.H{"limit": "expected a positive integer"}})
			return
		}
		limit = n
	}

	items, err := h.logs.ListBySession(c.Request.Context(), sessionID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": items, "count": len(items)})
}

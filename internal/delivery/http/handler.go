package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellavista/orderbot/internal/domain"
	"github.com/bellavista/orderbot/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chat      *usecase.ChatService
	validator *ActionValidator
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(chat *usecase.ChatService, validator *ActionValidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chat:      chat,
		validator: validator,
		logger:    logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "orderbot",
		"version": "1.0.0",
	})
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req usecase.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	resp, err := h.chat.Handle(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "message is required",
			})
			return
		}
		h.logger.Error("chat failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal server error",
		})
		return
	}

	if h.validator != nil {
		h.validator.Check(resp.ActionData, c.GetString(requestIDKey))
	}

	c.JSON(http.StatusOK, resp)
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// ClearSession handles POST /api/v1/chat/clear_session
func (h *Handler) ClearSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "session_id is required",
		})
		return
	}

	if err := h.chat.ClearSession(c.Request.Context(), req.SessionID); err != nil {
		h.logger.Error("failed to clear session", zap.String("session_id", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to clear session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": req.SessionID,
		"message":    "Session cleared",
	})
}

// History handles GET /api/v1/chat/history/:session_id
func (h *Handler) History(c *gin.Context) {
	sessionID := c.Param("session_id")

	turns, err := h.chat.History(c.Request.Context(), sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "session not found",
		})
		return
	case err != nil:
		h.logger.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to load session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"history":    turns,
	})
}

// Menu handles GET /api/v1/menu
func (h *Handler) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Menu(c.Request.Context()))
}

// RefreshMenu handles POST /api/v1/menu/refresh.
// A failed fetch answers 503 alongside the snapshot still being served.
func (h *Handler) RefreshMenu(c *gin.Context) {
	info, err := h.chat.RefreshMenu(c.Request.Context())
	if err != nil {
		h.logger.Warn("manual menu refresh failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "menu service unavailable",
			"menu":    info,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"menu":    info,
	})
}

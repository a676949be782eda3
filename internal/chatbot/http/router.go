package http

import "github.com/gin-gonic/gin"

// Register attaches chatbot routes to the given router group. Rate limiting
// is applied by the caller so the limiter can be shared with other routes.
func (h *Handler) Register(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	rg.POST("", limiter, h.chat)
	rg.GET("/history/:session_id", h.history)
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers day-view routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/timeline")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.View)
		group.POST("/selection", h.Selection)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers project related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/projects")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List own projects
		group.GET("/:id", h.Get)       // Get project details
		group.POST("", h.Create)       // Create project
		group.PATCH("/:id", h.Update)  // Update project
		group.DELETE("/:id", h.Delete) // Delete project
	}
}

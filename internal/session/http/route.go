package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers focus session routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/sessions")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/conflicts", h.CheckConflicts)      // Dry-run overlap check
		group.GET("/available-slots", h.AvailableSlots) // Free slots of one day
		group.GET("/next-slot", h.NextSlot)             // Earliest free slot from now
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

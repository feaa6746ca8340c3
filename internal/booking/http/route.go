package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("/quote", h.Quote)
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/invoice", h.Invoice)
		group.GET("/by-reference/:reference", h.GetByReference)
		group.PATCH("/:id", h.Update)
	}

	// The advisory availability check lives under the catalog path but is
	// served here because it needs the booking ledger.
	g.GET("/catalog/items/:id/availability", authMiddleware, h.ItemAvailability)
}

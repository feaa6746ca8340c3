package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers catalog routes. Reads require authentication;
// mutations additionally require admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	catalogGroup := g.Group("/catalog")
	catalogGroup.Use(authMiddleware)

	itemsGroup := catalogGroup.Group("/items")
	{
		itemsGroup.GET("", h.ListItems)
		itemsGroup.GET("/:id", h.GetItem)
		itemsGroup.POST("", adminMiddleware, h.CreateItem)
		itemsGroup.PATCH("/:id", adminMiddleware, h.UpdateItem)
		itemsGroup.DELETE("/:id", adminMiddleware, h.DeleteItem)
	}

	servicesGroup := catalogGroup.Group("/services")
	{
		servicesGroup.GET("", h.ListServices)
		servicesGroup.GET("/:id", h.GetService)
		servicesGroup.POST("", adminMiddleware, h.CreateService)
		servicesGroup.PATCH("/:id", adminMiddleware, h.UpdateService)
		servicesGroup.DELETE("/:id", adminMiddleware, h.DeleteService)
	}
}

package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/collage", h.collageHandler)
		api.POST("/collage/urls", h.collageURLsHandler)
		api.POST("/palette", h.paletteHandler)
	}
}

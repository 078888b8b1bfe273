package gate

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	config := r.Group("/config")
	{
		config.GET("", h.GetState)
		config.POST("/toggle", h.Toggle)
	}
}

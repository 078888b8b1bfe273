package trainer

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	trainers := r.Group("/trainers")
	{
		trainers.GET("", h.GetAll)
		trainers.POST("", h.Register)
		trainers.POST("/import", h.Import)
	}
}

package attendance

import (
	"github.com/Sultann121/hazori/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	{
		attendances.POST("",
			middleware.RateLimitByIP(rate.Limit(5), 10),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)
	}
}

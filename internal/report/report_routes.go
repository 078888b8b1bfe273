package report

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	{
		reports.GET("", h.GetReport)
		reports.GET("/pdf", h.GetReportPDF)
		reports.GET("/csv", h.GetReportCSV)
	}
	r.GET("/stats", h.GetStats)
}

package report

import (
	"fmt"
	"net/http"

	"github.com/Sultann121/hazori/internal/shared/apperror"
	"github.com/Sultann121/hazori/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func exportName(department string) string {
	if department == "" {
		return "all"
	}
	return department
}

func (h *Handler) GetReport(c *gin.Context) {
	resp, err := h.service.Report(c.Request.Context(), c.Query("department"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetReportPDF(c *gin.Context) {
	department := c.Query("department")
	pdf, err := h.service.ReportPDF(c.Request.Context(), department)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", exportName(department)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) GetReportCSV(c *gin.Context) {
	department := c.Query("department")
	out, err := h.service.ReportCSV(c.Request.Context(), department)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.csv", exportName(department)))
	c.Data(http.StatusOK, "text/csv", out)
}

func (h *Handler) GetStats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

package gate

import (
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

func (h *Handler) GetState(c *gin.Context) {
	open, err := h.service.IsOpen(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, StateResponse{AttendanceOpen: open}, nil)
}

func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.SetOpen(c.Request.Context(), *req.Open, req.AdminCode); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, StateResponse{AttendanceOpen: *req.Open}, nil)
}

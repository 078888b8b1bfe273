package trainer

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sultann121/hazori/internal/shared/apperror"
	"github.com/Sultann121/hazori/internal/shared/response"
	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

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

func (h *Handler) Register(c *gin.Context) {
	var req RegisterTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Import(c *gin.Context) {
	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		writeServiceError(c, trainererrors.ErrImportFileRequired)
		return
	}
	defer file.Close()

	if fileHeader == nil || !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		writeServiceError(c, trainererrors.ErrImportFileInvalid)
		return
	}

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

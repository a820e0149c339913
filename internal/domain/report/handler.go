package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studyhall/internal/domain/hall"
	"studyhall/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/halls/:id/reports/utilization", h.GetUtilization)
	r.GET("/halls/:id/reports/utilization/export", h.ExportUtilization)
}

func (h *Handler) GetUtilization(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	report, err := h.service.Utilization(c.Request.Context(), c.GetInt64("user_id"), hallID, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportUtilization(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "json")

	var buf bytes.Buffer
	renderer, report, err := h.service.Export(c.Request.Context(), c.GetInt64("user_id"), hallID, start, end, format, &buf)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("utilization_%d_%s_%s.%s", hallID, report.StartDate, report.EndDate, renderer.FileExtension())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}

func (h *Handler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	loc := h.service.Location()
	start, err := time.ParseInLocation(DateLayout, c.Query("start"), loc)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "start must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation(DateLayout, c.Query("end"), loc)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "end must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrRangeTooLarge):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, ErrUnknownFormat):
		response.ErrorWithDetails(c, http.StatusBadRequest, "UNKNOWN_FORMAT", err.Error(), gin.H{"formats": h.service.renderers.Formats()})
	default:
		hall.WriteError(c, err)
	}
}

package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhall/internal/domain/hall"
	"studyhall/internal/pkg/response"
)

type SaveScheduleRequest struct {
	Days WeekSchedule `json:"days"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/halls/:id/schedule", h.GetSchedule)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.PUT("/halls/:id/schedule", h.SaveSchedule)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	view, err := h.service.GetSchedule(c.Request.Context(), hallID)
	if err != nil {
		hall.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) SaveSchedule(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}

	var req SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeValidation(c, ve)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	view, err := h.service.SaveSchedule(c.Request.Context(), c.GetInt64("user_id"), hallID, req.Days)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeValidation(c, ve)
			return
		}
		hall.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func writeValidation(c *gin.Context, ve *ValidationError) {
	response.ErrorWithDetails(c, http.StatusUnprocessableEntity, string(ve.Code), ve.Message, gin.H{
		"day":   ve.Day,
		"shift": ve.Shift,
		"field": ve.Field,
	})
}

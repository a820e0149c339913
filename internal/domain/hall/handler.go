package hall

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyhall/internal/pkg/response"
	"studyhall/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/halls/:id", h.GetHall)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/halls", h.CreateHall)
	r.GET("/halls/my", h.GetMyHalls)
}

func (h *Handler) CreateHall(c *gin.Context) {
	var req CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hall", errs)
		return
	}

	created, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create hall")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hall": created})
}

func (h *Handler) GetMyHalls(c *gin.Context) {
	halls, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get halls")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"halls": halls})
}

func (h *Handler) GetHall(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall": found})
}

// ParseID reads a positive integer path param or writes a 400 and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// WriteError maps the hall lookup errors shared by every hall-scoped handler.
// It returns false when err is not one of them.
func WriteError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrHallNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hall not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this hall")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
		return false
	}
	return true
}

package seat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhall/internal/domain/hall"
	"studyhall/internal/pkg/keylock"
	"studyhall/internal/pkg/response"
	"studyhall/internal/pkg/validator"
)

type ReplaceSeatsRequest struct {
	Seats []SeatSpec `json:"seats" validate:"dive"`
}

type BulkStatusRequest struct {
	SeatIDs []int64 `json:"seat_ids" validate:"required,min=1"`
	StatusChange
}

type Handler struct {
	layout *LayoutManager
	status *StatusManager
}

func NewHandler(layout *LayoutManager, status *StatusManager) *Handler {
	return &Handler{layout: layout, status: status}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/halls/:id/seats", h.GetSeats)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.PUT("/halls/:id/seats", h.ReplaceSeats)
	r.DELETE("/halls/:id/seats/:seatId", h.DeleteSeat)
	r.PATCH("/seats/:seatId/status", h.SetStatus)
	r.PATCH("/seats/status", h.BulkSetStatus)
}

func (h *Handler) GetSeats(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	layout, err := h.layout.GetSeats(c.Request.Context(), hallID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, layout)
}

func (h *Handler) ReplaceSeats(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	var req ReplaceSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid seats", errs)
		return
	}

	layout, err := h.layout.ReplaceSeats(c.Request.Context(), c.GetInt64("user_id"), hallID, req.Seats)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, layout)
}

func (h *Handler) DeleteSeat(c *gin.Context) {
	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	seatID, ok := hall.ParseID(c, "seatId")
	if !ok {
		return
	}
	count, err := h.layout.DeleteSeat(c.Request.Context(), c.GetInt64("user_id"), hallID, seatID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall_id": hallID, "seat_count": count})
}

func (h *Handler) SetStatus(c *gin.Context) {
	seatID, ok := hall.ParseID(c, "seatId")
	if !ok {
		return
	}
	var req StatusChange
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	updated, err := h.status.SetStatus(c.Request.Context(), c.GetInt64("user_id"), seatID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"seat": updated})
}

func (h *Handler) BulkSetStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}
	updated, err := h.status.BulkSetStatus(c.Request.Context(), c.GetInt64("user_id"), req.SeatIDs, req.StatusChange)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"seats": updated, "updated": len(updated)})
}

func writeError(c *gin.Context, err error) {
	var dup *DuplicateSeatError
	var spec *SeatSpecError
	switch {
	case errors.As(err, &dup):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "DUPLICATE_SEAT_NUMBER", dup.Error(), gin.H{"seat_numbers": dup.Numbers})
	case errors.As(err, &spec):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "INVALID_SEAT_SPEC", spec.Error(), gin.H{
			"index":       spec.Index,
			"seat_number": spec.SeatNumber,
			"field":       spec.Field,
		})
	case errors.Is(err, ErrEmptySeatList):
		response.Error(c, http.StatusBadRequest, "EMPTY_SEAT_LIST", err.Error())
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATUS", err.Error())
	case errors.Is(err, ErrInvalidMaintenanceReason):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_MAINTENANCE_REASON", err.Error())
	case errors.Is(err, ErrInvalidMaintenanceWindow):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_MAINTENANCE_WINDOW", err.Error())
	case errors.Is(err, ErrSeatNotFound):
		response.Error(c, http.StatusNotFound, "SEAT_NOT_FOUND", "Seat not found")
	case errors.Is(err, ErrSomeSeatsNotFound):
		response.Error(c, http.StatusNotFound, "SOME_SEATS_NOT_FOUND", "Some seats were not found")
	case errors.Is(err, ErrInvalidData):
		response.Error(c, http.StatusConflict, "INVALID_DATA", "Seat layout changed concurrently, retry")
	case errors.Is(err, keylock.ErrNotAcquired):
		response.Error(c, http.StatusServiceUnavailable, "HALL_BUSY", "Hall is being updated, retry")
	default:
		hall.WriteError(c, err)
	}
}

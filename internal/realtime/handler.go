package realtime

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"studyhall/internal/domain/hall"
	"studyhall/internal/pkg/jwt"
	"studyhall/internal/pkg/response"
)

type HallLookup interface {
	GetByID(ctx context.Context, id int64) (*hall.Hall, error)
}

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	halls    HallLookup
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler builds the feed endpoint. checkOrigin may be nil to accept any
// origin.
func NewHandler(hub *Hub, jwtService *jwt.Service, halls HallLookup, checkOrigin func(*http.Request) bool, log *zap.Logger) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:   hub,
		jwt:   jwtService,
		halls: halls,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		log: log,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/halls/:id/seats", h.SeatFeed)
}

// SeatFeed upgrades to a websocket streaming seat events of one hall.
// Browsers cannot set headers on websocket requests, so the token comes in
// the query string.
func (h *Handler) SeatFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	hallID, ok := hall.ParseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.halls.GetByID(c.Request.Context(), hallID); err != nil {
		hall.WriteError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.log.Info("seat feed connected", zap.Int64("user_id", claims.UserID), zap.Int64("hall_id", hallID))
	h.hub.ServeWS(conn, claims.UserID, hallID)
	h.log.Info("seat feed disconnected", zap.Int64("user_id", claims.UserID), zap.Int64("hall_id", hallID))
}

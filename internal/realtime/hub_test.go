package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyhall/internal/domain/hall"
	"studyhall/internal/domain/seat"
	"studyhall/internal/pkg/jwt"
)

type stubHalls map[int64]*hall.Hall

func (s stubHalls) GetByID(_ context.Context, id int64) (*hall.Hall, error) {
	if h, ok := s[id]; ok {
		return h, nil
	}
	return nil, hall.ErrHallNotFound
}

func setupServer(t *testing.T) (*httptest.Server, *Hub, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil, zap.NewNop())
	jwtService := jwt.New("test-secret", time.Hour)
	h := NewHandler(hub, jwtService, stubHalls{1: {ID: 1}, 2: {ID: 2}}, nil, zap.NewNop())

	r := gin.New()
	h.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, jwtService
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestSeatFeed_DeliversToHallSubscribers(t *testing.T) {
	srv, hub, jwtService := setupServer(t)
	token, err := jwtService.GenerateToken(42, "hall_owner")
	require.NoError(t, err)

	hall1 := dial(t, srv, "/ws/halls/1/seats?token="+token)
	hall2 := dial(t, srv, "/ws/halls/2/seats?token="+token)
	assert.Equal(t, EventSubscribed, readEvent(t, hall1).Type)
	assert.Equal(t, EventSubscribed, readEvent(t, hall2).Type)
	assert.Equal(t, 1, hub.subscribers(1))

	reason := seat.ReasonCleaning
	hub.SeatsChanged(1, []seat.Seat{{ID: 7, HallID: 1, SeatNumber: "A1", Status: seat.StatusMaintenance, MaintenanceReason: &reason}})

	ev := readEvent(t, hall1)
	assert.Equal(t, EventSeatsChanged, ev.Type)
	assert.Equal(t, int64(1), ev.HallID)
	require.Len(t, ev.Seats, 1)
	assert.Equal(t, "A1", ev.Seats[0].SeatNumber)
	assert.Equal(t, seat.StatusMaintenance, ev.Seats[0].Status)

	// hall 2 gets nothing
	require.NoError(t, hall2.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = hall2.ReadMessage()
	assert.Error(t, err)
}

func TestSeatFeed_Rejections(t *testing.T) {
	srv, _, jwtService := setupServer(t)
	token, err := jwtService.GenerateToken(42, "hall_owner")
	require.NoError(t, err)

	cases := []struct {
		path string
		want int
	}{
		{"/ws/halls/1/seats", http.StatusUnauthorized},
		{"/ws/halls/1/seats?token=garbage", http.StatusUnauthorized},
		{"/ws/halls/99/seats?token=" + token, http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := http.Get(srv.URL + tc.path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, tc.path)
	}
}

func TestHub_UnregisterOnClose(t *testing.T) {
	srv, hub, jwtService := setupServer(t)
	token, err := jwtService.GenerateToken(42, "hall_owner")
	require.NoError(t, err)

	conn := dial(t, srv, "/ws/halls/1/seats?token="+token)
	readEvent(t, conn)
	require.Equal(t, 1, hub.subscribers(1))

	conn.Close()
	assert.Eventually(t, func() bool { return hub.subscribers(1) == 0 }, 2*time.Second, 10*time.Millisecond)
}

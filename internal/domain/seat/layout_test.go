package seat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"studyhall/internal/domain/hall"
	"studyhall/internal/pkg/keylock"
)

const (
	ownerID = int64(42)
	otherID = int64(7)
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db     *gorm.DB
	halls  *hall.Repository
	seats  *Repository
	layout *LayoutManager
	status *StatusManager
	notes  *recordingNotifier
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls map[int64][]Seat
}

func (n *recordingNotifier) SeatsChanged(hallID int64, seats []Seat) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls[hallID] = append(n.calls[hallID], seats...)
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:seat_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&hall.Hall{}, &Seat{}))

	halls := hall.NewRepository(db)
	seats := NewRepository(db)
	notes := &recordingNotifier{calls: make(map[int64][]Seat)}

	layout := NewLayoutManager(db, seats, halls, keylock.NewLocal(), DefaultLimits(), nil, zap.NewNop())
	layout.now = func() time.Time { return fixedNow }
	status := NewStatusManager(db, seats, halls, notes, nil, zap.NewNop())
	status.now = func() time.Time { return fixedNow }

	return &testEnv{db: db, halls: halls, seats: seats, layout: layout, status: status, notes: notes}
}

func (e *testEnv) createHall(t *testing.T, owner int64) *hall.Hall {
	t.Helper()
	h := &hall.Hall{OwnerID: owner, Name: "Hall", IsActive: true}
	require.NoError(t, e.halls.Create(context.Background(), h))
	return h
}

func spec(number string, x, y int) SeatSpec {
	return SeatSpec{SeatNumber: number, X: x, Y: y}
}

func TestReplaceSeats_SetsSeatCount(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)

	layout, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{
		spec("A1", 100, 150),
		spec("A2", 200, 150),
		spec("B1", 100, 250),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, layout.SeatCount)
	require.Len(t, layout.Seats, 3)
	for _, s := range layout.Seats {
		assert.NotZero(t, s.ID)
		assert.Equal(t, StatusAvailable, s.Status)
	}

	stored, err := env.halls.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.SeatCount)
}

func TestReplaceSeats_DuplicateLeavesPreviousSet(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)

	_, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{spec("X1", 10, 10), spec("X2", 20, 10)})
	require.NoError(t, err)

	_, err = env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{
		spec("A1", 1, 1),
		spec("A1", 2, 2),
		spec("B1", 3, 3),
		spec("B1", 4, 4),
		spec("C1", 5, 5),
	})
	require.ErrorIs(t, err, ErrDuplicateSeatNumber)
	var dup *DuplicateSeatError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, []string{"A1", "B1"}, dup.Numbers)

	got, err := env.layout.GetSeats(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, got.Seats, 2)
	assert.Equal(t, "X1", got.Seats[0].SeatNumber)

	stored, err := env.halls.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SeatCount)
}

func TestReplaceSeats_SeatNumbersMatchExactly(t *testing.T) {
	env := setupTestEnv(t)
	h := env.createHall(t, ownerID)

	layout, err := env.layout.ReplaceSeats(context.Background(), ownerID, h.ID, []SeatSpec{spec("a1", 0, 0), spec("A1", 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 2, layout.SeatCount)
}

func TestReplaceSeats_RejectsBeforeMutation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)
	_, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{spec("X1", 10, 10)})
	require.NoError(t, err)

	low, high := 49.99, 1000.01
	cases := []struct {
		name  string
		specs []SeatSpec
		err   error
		field string
	}{
		{name: "empty", specs: nil, err: ErrEmptySeatList},
		{name: "x too large", specs: []SeatSpec{spec("A1", 801, 0)}, err: ErrInvalidSeatSpec, field: "x"},
		{name: "negative y", specs: []SeatSpec{spec("A1", 0, -1)}, err: ErrInvalidSeatSpec, field: "y"},
		{name: "y too large", specs: []SeatSpec{spec("A1", 0, 601)}, err: ErrInvalidSeatSpec, field: "y"},
		{name: "cheap", specs: []SeatSpec{{SeatNumber: "A1", CustomPrice: &low}}, err: ErrInvalidSeatSpec, field: "custom_price"},
		{name: "expensive", specs: []SeatSpec{{SeatNumber: "A1", CustomPrice: &high}}, err: ErrInvalidSeatSpec, field: "custom_price"},
		{name: "blank number", specs: []SeatSpec{spec("  ", 0, 0)}, err: ErrInvalidSeatSpec, field: "seat_number"},
		{name: "bad status", specs: []SeatSpec{{SeatNumber: "A1", Status: "BROKEN"}}, err: ErrInvalidSeatSpec, field: "status"},
		{name: "maintenance without reason", specs: []SeatSpec{{SeatNumber: "A1", Status: StatusMaintenance}}, err: ErrInvalidSeatSpec, field: "maintenance_reason"},
	}
	for _, tc := range cases {
		_, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, tc.specs)
		require.ErrorIs(t, err, tc.err, tc.name)
		if tc.field != "" {
			var se *SeatSpecError
			require.True(t, errors.As(err, &se), tc.name)
			assert.Equal(t, tc.field, se.Field, tc.name)
		}
	}

	got, err := env.layout.GetSeats(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, got.Seats, 1)
}

func TestReplaceSeats_BoundaryValuesAccepted(t *testing.T) {
	env := setupTestEnv(t)
	h := env.createHall(t, ownerID)
	lo, hi := 50.0, 1000.0

	_, err := env.layout.ReplaceSeats(context.Background(), ownerID, h.ID, []SeatSpec{
		{SeatNumber: "A1", X: 0, Y: 0, CustomPrice: &lo},
		{SeatNumber: "A2", X: 800, Y: 600, CustomPrice: &hi, IsLadiesOnly: true},
		{SeatNumber: "A3", Status: StatusMaintenance, MaintenanceReason: ReasonRepair},
	})
	require.NoError(t, err)

	got, err := env.layout.GetSeats(context.Background(), h.ID)
	require.NoError(t, err)
	require.Len(t, got.Seats, 3)
	assert.True(t, got.Seats[1].IsLadiesOnly)
	require.NotNil(t, got.Seats[2].MaintenanceReason)
	assert.Equal(t, ReasonRepair, *got.Seats[2].MaintenanceReason)
	assert.NotNil(t, got.Seats[2].MaintenanceStarted)
}

func TestReplaceSeats_Ownership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)

	_, err := env.layout.ReplaceSeats(ctx, otherID, h.ID, []SeatSpec{spec("A1", 0, 0)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.layout.ReplaceSeats(ctx, ownerID, 999, []SeatSpec{spec("A1", 0, 0)})
	assert.ErrorIs(t, err, hall.ErrHallNotFound)
}

func TestReplaceSeats_ConcurrentSameHall(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			specs := make([]SeatSpec, n+1)
			for j := range specs {
				specs[j] = spec(fmt.Sprintf("R%d-%d", n, j), j, n)
			}
			_, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, specs)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := env.layout.GetSeats(ctx, h.ID)
	require.NoError(t, err)
	stored, err := env.halls.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, len(got.Seats), stored.SeatCount)
}

func TestGetSeats_OrderedBySeatNumber(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)

	_, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{spec("C1", 0, 0), spec("A2", 0, 0), spec("A1", 0, 0)})
	require.NoError(t, err)

	got, err := env.layout.GetSeats(ctx, h.ID)
	require.NoError(t, err)
	var numbers []string
	for _, s := range got.Seats {
		numbers = append(numbers, s.SeatNumber)
	}
	assert.Equal(t, []string{"A1", "A2", "C1"}, numbers)

	_, err = env.layout.GetSeats(ctx, 999)
	assert.ErrorIs(t, err, hall.ErrHallNotFound)
}

func TestDeleteSeat_RecomputesCount(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	h := env.createHall(t, ownerID)
	other := env.createHall(t, ownerID)

	layout, err := env.layout.ReplaceSeats(ctx, ownerID, h.ID, []SeatSpec{spec("A1", 0, 0), spec("A2", 0, 0), spec("A3", 0, 0)})
	require.NoError(t, err)
	otherLayout, err := env.layout.ReplaceSeats(ctx, ownerID, other.ID, []SeatSpec{spec("Z1", 0, 0)})
	require.NoError(t, err)

	count, err := env.layout.DeleteSeat(ctx, ownerID, h.ID, layout.Seats[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := env.halls.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SeatCount)

	_, err = env.layout.DeleteSeat(ctx, ownerID, h.ID, layout.Seats[1].ID)
	assert.ErrorIs(t, err, ErrSeatNotFound)

	// a seat of another hall is not found through this hall
	_, err = env.layout.DeleteSeat(ctx, ownerID, h.ID, otherLayout.Seats[0].ID)
	assert.ErrorIs(t, err, ErrSeatNotFound)

	_, err = env.layout.DeleteSeat(ctx, otherID, h.ID, layout.Seats[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

// failingLocker fails the way keylock.Redis does when the server is down.
type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, errors.Join(keylock.ErrNotAcquired, errors.New("dial tcp 127.0.0.1:6379: connection refused"))
}

func TestReplaceSeats_LockFailure(t *testing.T) {
	env := setupTestEnv(t)
	h := env.createHall(t, ownerID)
	env.layout.locker = failingLocker{}

	_, err := env.layout.ReplaceSeats(context.Background(), ownerID, h.ID, []SeatSpec{spec("A1", 0, 0)})
	assert.ErrorIs(t, err, keylock.ErrNotAcquired)
}

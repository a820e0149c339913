package seat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studyhall/internal/domain/hall"
	"studyhall/internal/metrics"
	"studyhall/internal/pkg/dberr"
	"studyhall/internal/pkg/keylock"
)

// LayoutManager replaces, reads and trims hall seat sets. Writes for one
// hall are serialized by the locker and run in a single transaction.
type LayoutManager struct {
	db      *gorm.DB
	seats   *Repository
	halls   *hall.Repository
	locker  keylock.Locker
	limits  Limits
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewLayoutManager(db *gorm.DB, seats *Repository, halls *hall.Repository, locker keylock.Locker, limits Limits, m *metrics.Metrics, log *zap.Logger) *LayoutManager {
	return &LayoutManager{
		db:      db,
		seats:   seats,
		halls:   halls,
		locker:  locker,
		limits:  limits,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

func hallLockKey(hallID int64) string {
	return "hall:" + strconv.FormatInt(hallID, 10)
}

// ReplaceSeats swaps the whole seat set of a hall for specs. Specs are fully
// checked before anything is touched; on any later failure the previous set
// and seat count stay committed.
func (m *LayoutManager) ReplaceSeats(ctx context.Context, ownerID, hallID int64, specs []SeatSpec) (*Layout, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySeatList
	}
	for i, s := range specs {
		if err := m.limits.Check(i, s); err != nil {
			return nil, err
		}
	}
	if dups := findDuplicates(specs); len(dups) > 0 {
		return nil, &DuplicateSeatError{Numbers: dups}
	}

	now := m.now()
	next := make([]Seat, len(specs))
	for i, s := range specs {
		next[i] = fromSpec(hallID, s, now)
	}

	release, err := m.lock(ctx, hallID)
	if err != nil {
		return nil, err
	}
	defer release()

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		halls := m.halls.WithTx(tx)
		seats := m.seats.WithTx(tx)

		if _, err := halls.GetOwnedForUpdate(ctx, hallID, ownerID); err != nil {
			return err
		}
		if err := seats.DeleteByHall(ctx, hallID); err != nil {
			return err
		}
		if err := seats.CreateBatch(ctx, next); err != nil {
			return err
		}
		return halls.SetSeatCount(ctx, hallID, len(next))
	})
	if err != nil {
		m.metrics.LayoutReplaced("failed")
		if dberr.IsUniqueViolation(err) {
			m.log.Warn("seat layout conflict", zap.Int64("hall_id", hallID), zap.Error(err))
			return nil, fmt.Errorf("%w: seat number already taken", ErrInvalidData)
		}
		return nil, err
	}

	m.metrics.LayoutReplaced("ok")
	m.log.Info("seat layout replaced", zap.Int64("hall_id", hallID), zap.Int("seat_count", len(next)))

	sortSeats(next)
	return &Layout{HallID: hallID, Seats: next, SeatCount: len(next)}, nil
}

func (m *LayoutManager) GetSeats(ctx context.Context, hallID int64) (*Layout, error) {
	if _, err := m.halls.GetByID(ctx, hallID); err != nil {
		return nil, err
	}
	seats, err := m.seats.ListByHall(ctx, hallID)
	if err != nil {
		return nil, err
	}
	return &Layout{HallID: hallID, Seats: seats, SeatCount: len(seats)}, nil
}

// DeleteSeat removes one seat and returns the hall's new seat count.
func (m *LayoutManager) DeleteSeat(ctx context.Context, ownerID, hallID, seatID int64) (int, error) {
	release, err := m.lock(ctx, hallID)
	if err != nil {
		return 0, err
	}
	defer release()

	var count int
	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		halls := m.halls.WithTx(tx)
		seats := m.seats.WithTx(tx)

		if _, err := halls.GetOwnedForUpdate(ctx, hallID, ownerID); err != nil {
			return err
		}
		deleted, err := seats.DeleteOne(ctx, hallID, seatID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrSeatNotFound
		}
		if count, err = seats.CountByHall(ctx, hallID); err != nil {
			return err
		}
		return halls.SetSeatCount(ctx, hallID, count)
	})
	if err != nil {
		return 0, err
	}

	m.log.Info("seat deleted", zap.Int64("hall_id", hallID), zap.Int64("seat_id", seatID), zap.Int("seat_count", count))
	return count, nil
}

func (m *LayoutManager) lock(ctx context.Context, hallID int64) (func(), error) {
	start := time.Now()
	release, err := m.locker.Lock(ctx, hallLockKey(hallID))
	m.metrics.LockWaited(time.Since(start))
	if err != nil {
		if errors.Is(err, keylock.ErrNotAcquired) {
			m.log.Warn("hall lock not acquired", zap.Int64("hall_id", hallID))
		}
		return nil, err
	}
	return release, nil
}

func fromSpec(hallID int64, s SeatSpec, now time.Time) Seat {
	st := s.Status
	if st == "" {
		st = StatusAvailable
	}
	out := Seat{
		HallID:       hallID,
		SeatNumber:   s.SeatNumber,
		X:            s.X,
		Y:            s.Y,
		Status:       st,
		CustomPrice:  s.CustomPrice,
		IsLadiesOnly: s.IsLadiesOnly,
	}
	if st == StatusMaintenance {
		reason := s.MaintenanceReason
		started := now
		out.MaintenanceReason = &reason
		out.MaintenanceStarted = &started
	}
	return out
}

func sortSeats(seats []Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		if seats[i].SeatNumber != seats[j].SeatNumber {
			return seats[i].SeatNumber < seats[j].SeatNumber
		}
		return seats[i].ID < seats[j].ID
	})
}

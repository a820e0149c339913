package seat

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studyhall/internal/domain/hall"
	"studyhall/internal/metrics"
)

// StatusChange is a requested transition. Reason and Until only apply to
// MAINTENANCE.
type StatusChange struct {
	Status            Status            `json:"status" validate:"required"`
	MaintenanceReason MaintenanceReason `json:"maintenance_reason,omitempty"`
	MaintenanceUntil  *time.Time        `json:"maintenance_until,omitempty"`
}

// Notifier receives seats after a committed status transition.
type Notifier interface {
	SeatsChanged(hallID int64, seats []Seat)
}

type StatusManager struct {
	db       *gorm.DB
	seats    *Repository
	halls    *hall.Repository
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewStatusManager(db *gorm.DB, seats *Repository, halls *hall.Repository, notifier Notifier, m *metrics.Metrics, log *zap.Logger) *StatusManager {
	return &StatusManager{
		db:       db,
		seats:    seats,
		halls:    halls,
		notifier: notifier,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// check validates a change on its own, before any seat is loaded.
func (c StatusChange) check(now time.Time) error {
	switch c.Status {
	case StatusMaintenance:
		if !c.MaintenanceReason.Valid() {
			return ErrInvalidMaintenanceReason
		}
		if c.MaintenanceUntil != nil && !c.MaintenanceUntil.After(now) {
			return ErrInvalidMaintenanceWindow
		}
	case StatusAvailable, StatusBooked, StatusLocked:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// apply mutates s according to a checked change.
func (c StatusChange) apply(s *Seat, now time.Time) {
	s.Status = c.Status
	s.UpdatedAt = now
	switch c.Status {
	case StatusMaintenance:
		reason := c.MaintenanceReason
		started := now
		s.MaintenanceReason = &reason
		s.MaintenanceStarted = &started
		s.MaintenanceUntil = nil
		if c.MaintenanceUntil != nil {
			until := *c.MaintenanceUntil
			s.MaintenanceUntil = &until
		}
	case StatusAvailable:
		s.MaintenanceReason = nil
		s.MaintenanceStarted = nil
		s.MaintenanceUntil = nil
	}
}

func (m *StatusManager) SetStatus(ctx context.Context, ownerID, seatID int64, change StatusChange) (*Seat, error) {
	now := m.now()
	if err := change.check(now); err != nil {
		return nil, err
	}

	var updated *Seat
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seats := m.seats.WithTx(tx)

		s, err := seats.GetByIDForUpdate(ctx, seatID)
		if err != nil {
			return err
		}
		if _, err := m.halls.WithTx(tx).GetOwned(ctx, s.HallID, ownerID); err != nil {
			return err
		}
		change.apply(s, now)
		if err := seats.UpdateStatus(ctx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publish([]Seat{*updated}, change.Status)
	return updated, nil
}

// BulkSetStatus resolves and authorizes every seat before changing any of
// them. Repeated ids count once.
func (m *StatusManager) BulkSetStatus(ctx context.Context, ownerID int64, seatIDs []int64, change StatusChange) ([]Seat, error) {
	ids := uniqueIDs(seatIDs)
	if len(ids) == 0 {
		return nil, ErrEmptySeatList
	}
	now := m.now()
	if err := change.check(now); err != nil {
		return nil, err
	}

	var updated []Seat
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seats := m.seats.WithTx(tx)

		found, err := seats.GetByIDsForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		if len(found) != len(ids) {
			return ErrSomeSeatsNotFound
		}

		hallIDs := make([]int64, 0, len(found))
		for _, s := range found {
			hallIDs = append(hallIDs, s.HallID)
		}
		owners, err := m.halls.WithTx(tx).OwnersOf(ctx, uniqueIDs(hallIDs))
		if err != nil {
			return err
		}
		for _, s := range found {
			if owner, ok := owners[s.HallID]; !ok || owner != ownerID {
				return ErrForbidden
			}
		}

		for i := range found {
			change.apply(&found[i], now)
			if err := seats.UpdateStatus(ctx, &found[i]); err != nil {
				return err
			}
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publish(updated, change.Status)
	return updated, nil
}

func (m *StatusManager) publish(seats []Seat, status Status) {
	m.metrics.SeatTransitioned(string(status), len(seats))
	m.log.Info("seat status changed", zap.String("status", string(status)), zap.Int("seats", len(seats)))
	if m.notifier == nil {
		return
	}
	byHall := make(map[int64][]Seat)
	var order []int64
	for _, s := range seats {
		if _, ok := byHall[s.HallID]; !ok {
			order = append(order, s.HallID)
		}
		byHall[s.HallID] = append(byHall[s.HallID], s)
	}
	for _, hallID := range order {
		m.notifier.SeatsChanged(hallID, byHall[hallID])
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

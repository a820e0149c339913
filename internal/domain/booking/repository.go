package booking

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *Booking) error {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	return r.db.WithContext(ctx).Create(b).Error
}

// LoadBookingsInRange returns intervals of a hall whose start lies in
// [from, to). With no statuses every booking is returned. Bounds are
// compared in UTC, the zone timestamps are stored in.
func (r *Repository) LoadBookingsInRange(ctx context.Context, hallID int64, from, to time.Time, statuses ...Status) ([]Interval, error) {
	q := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("seat_id", "start_time", "end_time", "status").
		Where("hall_id = ?", hallID).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC())
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var rows []Interval
	if err := q.Order("start_time").Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumConfirmedRevenue totals total_price of confirmed and completed bookings
// starting in [from, to).
func (r *Repository) SumConfirmedRevenue(ctx context.Context, hallID int64, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("hall_id = ?", hallID).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC()).
		Where("status IN ?", ConfirmedStatuses).
		Row().
		Scan(&total)
	return total, err
}

package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrScheduleNotFound = errors.New("schedule not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadDayHours returns the stored week for a hall or ErrScheduleNotFound.
func (r *Repository) LoadDayHours(ctx context.Context, hallID int64) (*HallSchedule, error) {
	var rec HallSchedule
	err := r.db.WithContext(ctx).Where("hall_id = ?", hallID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SaveDayHours replaces the hall's whole week in one statement.
func (r *Repository) SaveDayHours(ctx context.Context, hallID int64, days WeekSchedule) error {
	now := time.Now()
	rec := HallSchedule{
		HallID:    hallID,
		Days:      days,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hall_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
		}).
		Create(&rec).Error
}

func (r *Repository) count(ctx context.Context, hallID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&HallSchedule{}).Where("hall_id = ?", hallID).Count(&n).Error
	return n, err
}

package seat

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByHall returns a hall's seats ordered by seat number, then id.
func (r *Repository) ListByHall(ctx context.Context, hallID int64) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Order("seat_number").
		Order("id").
		Find(&seats).Error
	return seats, err
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*Seat, error) {
	var s Seat
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByIDsForUpdate(ctx context.Context, ids []int64) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&seats).Error
	return seats, err
}

func (r *Repository) DeleteByHall(ctx context.Context, hallID int64) error {
	return r.db.WithContext(ctx).Where("hall_id = ?", hallID).Delete(&Seat{}).Error
}

func (r *Repository) CreateBatch(ctx context.Context, seats []Seat) error {
	return r.db.WithContext(ctx).CreateInBatches(seats, 200).Error
}

// DeleteOne removes one seat of a hall and reports whether it existed.
func (r *Repository) DeleteOne(ctx context.Context, hallID, seatID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND hall_id = ?", seatID, hallID).
		Delete(&Seat{})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) CountByHall(ctx context.Context, hallID int64) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Where("hall_id = ?", hallID).Count(&n).Error
	return int(n), err
}

// UpdateStatus writes the status and maintenance columns of s.
func (r *Repository) UpdateStatus(ctx context.Context, s *Seat) error {
	return r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"status":              s.Status,
			"maintenance_reason":  s.MaintenanceReason,
			"maintenance_started": s.MaintenanceStarted,
			"maintenance_until":   s.MaintenanceUntil,
			"updated_at":          s.UpdatedAt,
		}).Error
}

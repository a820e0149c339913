package hall

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

// WithTx returns a repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, h *Hall) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Hall, error) {
	var h Hall
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetOwned loads a hall and checks it belongs to ownerID. A missing hall and
// a foreign hall produce different errors.
func (r *Repository) GetOwned(ctx context.Context, id, ownerID int64) (*Hall, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return h, nil
}

// GetOwnedForUpdate is GetOwned with a row lock; use inside a transaction.
// SQLite ignores the locking clause.
func (r *Repository) GetOwnedForUpdate(ctx context.Context, id, ownerID int64) (*Hall, error) {
	var h Hall
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return &h, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]Hall, error) {
	var halls []Hall
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&halls).Error
	return halls, err
}

// OwnersOf maps each hall id to its owner id.
func (r *Repository) OwnersOf(ctx context.Context, ids []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Hall
	if err := r.db.WithContext(ctx).
		Select("id", "owner_id").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, h := range rows {
		out[h.ID] = h.OwnerID
	}
	return out, nil
}

func (r *Repository) SetSeatCount(ctx context.Context, hallID int64, n int) error {
	res := r.db.WithContext(ctx).
		Model(&Hall{}).
		Where("id = ?", hallID).
		Update("seat_count", n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHallNotFound
	}
	return nil
}

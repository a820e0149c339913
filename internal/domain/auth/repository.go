package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"studyhall/internal/pkg/dberr"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	u.Email = normalizeEmail(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// RecordFailedLogin stores the attempt count and, when set, the lockout end.
func (r *Repository) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	updates := map[string]any{"failed_login_attempts": attempts}
	if lockedUntil != nil {
		updates["locked_until"] = *lockedUntil
	}
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *Repository) ResetFailedLogins(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}).Error
}

// ClearExpiredLockouts resets accounts whose lockout ended before now.
func (r *Repository) ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("locked_until IS NOT NULL AND locked_until < ?", now).
		Updates(map[string]any{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		})
	return res.RowsAffected, res.Error
}

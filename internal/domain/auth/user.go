package auth

import "time"

type UserRole string

const (
	RoleHallOwner UserRole = "hall_owner"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID                  int64      `json:"id" gorm:"primaryKey"`
	Email               string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash        string     `json:"-" gorm:"not null"`
	Role                UserRole   `json:"role" gorm:"size:32;not null"`
	Name                string     `json:"name"`
	FailedLoginAttempts int        `json:"-" gorm:"not null"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

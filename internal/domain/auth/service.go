package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"studyhall/internal/pkg/jwt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User        *User
	AccessToken string
	ExpiresIn   time.Duration
}

type Service struct {
	users *Repository
	jwt   *jwt.Service
	log   *zap.Logger
	now   func() time.Time
}

func NewService(users *Repository, jwtService *jwt.Service, log *zap.Logger) *Service {
	return &Service{users: users, jwt: jwtService, log: log, now: time.Now}
}

// Login checks the password and issues an access token. After
// maxFailedLoginAttempts wrong passwords the account is locked for
// lockoutDuration.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if err := CheckPassword(req.Password, user.PasswordHash); err != nil {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedLoginAttempts {
			until := now.Add(lockoutDuration)
			lockedUntil = &until
		}
		if err := s.users.RecordFailedLogin(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, err
		}
		if lockedUntil != nil {
			s.log.Warn("account locked", zap.Int64("user_id", user.ID))
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.users.ResetFailedLogins(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token, ExpiresIn: s.jwt.TTL()}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

package hall

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type CreateHallRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=120"`
}

type Service struct {
	repo *Repository
	log  *zap.Logger
}

func NewService(repo *Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateHallRequest) (*Hall, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	h := &Hall{
		OwnerID:  ownerID,
		Name:     name,
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.log.Info("hall created", zap.Int64("hall_id", h.ID), zap.Int64("owner_id", ownerID))
	return h, nil
}

func (s *Service) Get(ctx context.Context, hallID int64) (*Hall, error) {
	return s.repo.GetByID(ctx, hallID)
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]Hall, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

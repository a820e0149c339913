package schedule

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"studyhall/internal/domain/hall"
	"studyhall/internal/metrics"
)

// HallLookup is the part of the hall repository the schedule service needs.
type HallLookup interface {
	GetByID(ctx context.Context, id int64) (*hall.Hall, error)
	GetOwned(ctx context.Context, id, ownerID int64) (*hall.Hall, error)
}

type Service struct {
	repo    *Repository
	halls   HallLookup
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewService(repo *Repository, halls HallLookup, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{repo: repo, halls: halls, metrics: m, log: log}
}

// GetSchedule returns the stored week, or the default template when the hall
// never saved one. The default is not written.
func (s *Service) GetSchedule(ctx context.Context, hallID int64) (*View, error) {
	if _, err := s.halls.GetByID(ctx, hallID); err != nil {
		return nil, err
	}
	rec, err := s.repo.LoadDayHours(ctx, hallID)
	if errors.Is(err, ErrScheduleNotFound) {
		return &View{HallID: hallID, Days: DefaultSchedule(), IsDefault: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &View{HallID: hallID, Days: rec.Days}, nil
}

func (s *Service) SaveSchedule(ctx context.Context, ownerID, hallID int64, days WeekSchedule) (*View, error) {
	if _, err := s.halls.GetOwned(ctx, hallID, ownerID); err != nil {
		return nil, err
	}
	if err := Validate(days); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.metrics.ScheduleRejected(string(verr.Code))
			s.log.Debug("schedule rejected",
				zap.Int64("hall_id", hallID),
				zap.String("code", string(verr.Code)),
				zap.String("day", verr.Day),
			)
		}
		return nil, err
	}
	if err := s.repo.SaveDayHours(ctx, hallID, days); err != nil {
		return nil, err
	}
	s.log.Info("schedule saved", zap.Int64("hall_id", hallID), zap.Int64("owner_id", ownerID))
	return &View{HallID: hallID, Days: days}, nil
}

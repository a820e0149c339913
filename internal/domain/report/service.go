package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"studyhall/internal/domain/booking"
	"studyhall/internal/domain/hall"
	"studyhall/internal/metrics"
)

const maxRangeDays = 366

var (
	ErrInvalidRange  = errors.New("end date must not be before start date")
	ErrRangeTooLarge = fmt.Errorf("date range longer than %d days", maxRangeDays)
)

type HallLookup interface {
	GetOwned(ctx context.Context, id, ownerID int64) (*hall.Hall, error)
}

type BookingSource interface {
	LoadBookingsInRange(ctx context.Context, hallID int64, from, to time.Time, statuses ...booking.Status) ([]booking.Interval, error)
	SumConfirmedRevenue(ctx context.Context, hallID int64, from, to time.Time) (float64, error)
}

type Service struct {
	halls     HallLookup
	bookings  BookingSource
	renderers *Registry
	opts      Options
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewService(halls HallLookup, bookings BookingSource, renderers *Registry, opts Options, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{
		halls:     halls,
		bookings:  bookings,
		renderers: renderers,
		opts:      opts,
		metrics:   m,
		log:       log,
	}
}

func (s *Service) Location() *time.Location {
	return s.opts.location()
}

// Utilization loads the hall's confirmed bookings for the dates [start, end]
// and assembles the report.
func (s *Service) Utilization(ctx context.Context, ownerID, hallID int64, start, end time.Time) (*UtilizationReport, error) {
	loc := s.opts.location()
	if startOfDay(end, loc).Before(startOfDay(start, loc)) {
		return nil, ErrInvalidRange
	}
	if len(dateRange(start, end, loc)) > maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	h, err := s.halls.GetOwned(ctx, hallID, ownerID)
	if err != nil {
		return nil, err
	}

	from, to := s.opts.Window(start, end)
	intervals, err := s.bookings.LoadBookingsInRange(ctx, hallID, from, to, booking.ConfirmedStatuses...)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	revenue, err := s.bookings.SumConfirmedRevenue(ctx, hallID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	report := Assemble(h, start, end, h.SeatCount, intervals, revenue, s.opts)
	s.log.Debug("utilization report built",
		zap.Int64("hall_id", hallID),
		zap.String("start", report.StartDate),
		zap.String("end", report.EndDate),
		zap.Int("bookings", report.TotalBookings))
	return report, nil
}

// Export renders the report in the requested format. It returns the renderer
// so callers can set content type and file name.
func (s *Service) Export(ctx context.Context, ownerID, hallID int64, start, end time.Time, format string, w io.Writer) (Renderer, *UtilizationReport, error) {
	renderer, err := s.renderers.Get(format)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.Utilization(ctx, ownerID, hallID, start, end)
	if err != nil {
		return nil, nil, err
	}
	if err := renderer.Render(w, report); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", format, err)
	}
	s.metrics.ReportBuilt(renderer.FileExtension())
	return renderer, report, nil
}

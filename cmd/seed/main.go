package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"studyhall/internal/config"
	"studyhall/internal/database"
	"studyhall/internal/domain/auth"
	"studyhall/internal/domain/booking"
	"studyhall/internal/domain/hall"
	"studyhall/internal/domain/schedule"
	"studyhall/internal/domain/seat"
	"studyhall/internal/pkg/keylock"
	"studyhall/internal/pkg/logger"
)

const (
	demoEmail    = "owner@studyhall.local"
	demoPassword = "owner123"
	seatRows     = 4
	seatCols     = 6
	seatSpacing  = 60
	bookingDays  = 14
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := seed(context.Background(), cfg, lg); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	users := auth.NewRepository(db)
	owner, err := users.GetByEmail(ctx, demoEmail)
	if errors.Is(err, auth.ErrUserNotFound) {
		hash, herr := auth.HashPassword(demoPassword)
		if herr != nil {
			return herr
		}
		owner = &auth.User{Email: demoEmail, PasswordHash: hash, Role: auth.RoleHallOwner, Name: "Demo Owner"}
		if err = users.Create(ctx, owner); err != nil {
			return err
		}
		lg.Info("owner created", zap.String("email", demoEmail), zap.String("password", demoPassword))
	} else if err != nil {
		return err
	}

	hallRepo := hall.NewRepository(db)
	h, err := hall.NewService(hallRepo, lg).Create(ctx, owner.ID, hall.CreateHallRequest{
		Name:    fmt.Sprintf("Reading Room %s", time.Now().Format("0102-1504")),
		Address: "12 Library Lane",
		City:    "Almaty",
	})
	if err != nil {
		return err
	}

	schedules := schedule.NewService(schedule.NewRepository(db), hallRepo, nil, lg)
	if _, err := schedules.SaveSchedule(ctx, owner.ID, h.ID, schedule.DefaultSchedule()); err != nil {
		return err
	}

	specs := make([]seat.SeatSpec, 0, seatRows*seatCols)
	for r := 0; r < seatRows; r++ {
		for c := 0; c < seatCols; c++ {
			spec := seat.SeatSpec{
				SeatNumber: fmt.Sprintf("%c%d", 'A'+r, c+1),
				X:          (c + 1) * seatSpacing,
				Y:          (r + 1) * seatSpacing,
				Status:     seat.StatusAvailable,
			}
			if r == 0 {
				price := 150.0
				spec.CustomPrice = &price
			}
			if r == seatRows-1 && c < 2 {
				spec.IsLadiesOnly = true
			}
			specs = append(specs, spec)
		}
	}
	layouts := seat.NewLayoutManager(db, seat.NewRepository(db), hallRepo, keylock.NewLocal(), seat.DefaultLimits(), nil, lg)
	layout, err := layouts.ReplaceSeats(ctx, owner.ID, h.ID, specs)
	if err != nil {
		return err
	}

	// random history over the last two weeks so reports have data
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	bookings := booking.NewRepository(db)
	statuses := []booking.Status{booking.StatusConfirmed, booking.StatusCompleted, booking.StatusCancelled, booking.StatusPending}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	created := 0
	for d := 1; d <= bookingDays; d++ {
		day := today.AddDate(0, 0, -d)
		for i := 0; i < 10+rnd.Intn(10); i++ {
			s := layout.Seats[rnd.Intn(len(layout.Seats))]
			start := day.Add(time.Duration(8+rnd.Intn(12)) * time.Hour)
			hours := 1 + rnd.Intn(3)
			b := &booking.Booking{
				HallID:     h.ID,
				SeatID:     s.ID,
				UserID:     owner.ID,
				StartTime:  start,
				EndTime:    start.Add(time.Duration(hours) * time.Hour),
				TotalPrice: float64(hours) * 100,
				Status:     statuses[rnd.Intn(len(statuses))],
			}
			if err := bookings.Create(ctx, b); err != nil {
				return err
			}
			created++
		}
	}

	lg.Info("seed completed",
		zap.Int64("hall_id", h.ID),
		zap.Int("seats", layout.SeatCount),
		zap.Int("bookings", created),
	)
	return nil
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studyhall/internal/config"
	"studyhall/internal/domain/auth"
	"studyhall/internal/domain/booking"
	"studyhall/internal/domain/hall"
	"studyhall/internal/domain/report"
	"studyhall/internal/domain/schedule"
	"studyhall/internal/domain/seat"
	"studyhall/internal/metrics"
	"studyhall/internal/middleware"
	"studyhall/internal/pkg/jwt"
	"studyhall/internal/pkg/keylock"
	"studyhall/internal/realtime"
)

// newRouter wires repositories, services and handlers onto a gin engine.
// m may be nil when metrics are disabled.
func newRouter(cfg *config.Config, db *gorm.DB, locker keylock.Locker, m *metrics.Metrics, lg *zap.Logger) *gin.Engine {
	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := realtime.NewHub(m, lg)

	// Repositories
	userRepo := auth.NewRepository(db)
	hallRepo := hall.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	seatRepo := seat.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// Services
	authService := auth.NewService(userRepo, jwtService, lg)
	hallService := hall.NewService(hallRepo, lg)
	scheduleService := schedule.NewService(scheduleRepo, hallRepo, m, lg)
	limits := seat.Limits{
		MaxX:     cfg.SeatMaxX,
		MaxY:     cfg.SeatMaxY,
		MinPrice: cfg.SeatMinPrice,
		MaxPrice: cfg.SeatMaxPrice,
	}
	layoutManager := seat.NewLayoutManager(db, seatRepo, hallRepo, locker, limits, m, lg)
	statusManager := seat.NewStatusManager(db, seatRepo, hallRepo, hub, m, lg)
	reportService := report.NewService(hallRepo, bookingRepo, report.DefaultRegistry(), report.Options{
		OperatingHoursPerDay: cfg.OperatingHoursPerDay,
		Location:             cfg.ReportLocation,
	}, m, lg)

	// Handlers
	authHandler := auth.NewHandler(authService)
	hallHandler := hall.NewHandler(hallService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	seatHandler := seat.NewHandler(layoutManager, statusManager)
	reportHandler := report.NewHandler(reportService)
	feedHandler := realtime.NewHandler(hub, jwtService, hallRepo, middleware.OriginChecker(cfg.CORSAllowedOrigins), lg)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(lg),
		middleware.Recovery(lg),
		middleware.CORS(cfg.CORSAllowedOrigins),
		m.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		hallHandler.RegisterRoutes(v1)
		scheduleHandler.RegisterRoutes(v1)
		seatHandler.RegisterRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(
			middleware.JWTAuth(jwtService),
			middleware.RequireRole(string(auth.RoleHallOwner), string(auth.RoleAdmin)),
		)
		{
			authHandler.RegisterProtectedRoutes(protected)
			hallHandler.RegisterProtectedRoutes(protected)
			scheduleHandler.RegisterProtectedRoutes(protected)
			seatHandler.RegisterProtectedRoutes(protected)
			reportHandler.RegisterProtectedRoutes(protected)
		}
	}
	return r
}

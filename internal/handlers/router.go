package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/booking"
	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/middlewares"
)

type RouterConfig struct {
	JWTSecret       string
	CORSOrigins     []string
	RateLimitPerMin int
	HealthCheck     func() error
}

func NewRouter(cfg RouterConfig, engine *booking.Engine, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middlewares.Recovery(logger))
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitPerMin, logger).Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bh := NewBookingHandler(engine, logger)
	bookings := r.Group("/api/bookings")
	bookings.Use(middlewares.JWTAuth(cfg.JWTSecret))
	{
		bookings.POST("", bh.Create)
		bookings.GET("/my-bookings", bh.MyBookings)
		bookings.DELETE("/:id", bh.Cancel)
		bookings.GET("/available-slots", bh.AvailableSlots)
	}

	ah := NewAdminHandler(engine, logger)
	admin := r.Group("/api/admin")
	admin.Use(middlewares.JWTAuth(cfg.JWTSecret), middlewares.RequireRole(calendar.RoleAdmin))
	{
		admin.POST("/availability", ah.SetAvailability)
		admin.GET("/availability", ah.ListAvailability)
		admin.GET("/bookings", ah.BookingsForDate)
		admin.GET("/bookings/:id/events", ah.BookingEvents)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

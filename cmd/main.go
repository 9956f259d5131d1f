package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/booking"
	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/config"
	"github.com/Leganyst/slot-booking/internal/db"
	"github.com/Leganyst/slot-booking/internal/handlers"
	"github.com/Leganyst/slot-booking/internal/logger"
	"github.com/Leganyst/slot-booking/internal/model"
	"github.com/Leganyst/slot-booking/internal/mq"
	"github.com/Leganyst/slot-booking/internal/repository"
	"github.com/Leganyst/slot-booking/internal/service"
)

func main() {
	// 1. Конфиг из env (и .env, если есть).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.App.IsProduction(), cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	loc, err := cfg.App.Location()
	if err != nil {
		zl.Fatal("schedule time zone", zap.Error(err))
	}

	// 2. БД и миграции.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		zl.Fatal("init db", zap.Error(err))
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		zl.Fatal("auto migrate", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		zl.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 3. Репозитории. Кэш доступности включается, если задан REDIS_ADDR.
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)
	var availabilityRepo repository.AvailabilityRepository = repository.NewGormAvailabilityRepository(gormDB)
	if cfg.App.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.App.RedisAddr,
			Password: cfg.App.RedisPassword,
			DB:       cfg.App.RedisDB,
		})
		defer rdb.Close()
		availabilityRepo = repository.NewCachedAvailabilityRepository(availabilityRepo, rdb, cfg.App.CacheTTL, zl)
		zl.Info("availability cache enabled", zap.String("addr", cfg.App.RedisAddr))
	}

	// 4. Публикация событий: RabbitMQ или заглушка.
	var publisher interface {
		booking.Publisher
		Close() error
	} = mq.NopPublisher{}
	if cfg.App.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.App.RabbitURL, cfg.App.BookingExchange)
		if err != nil {
			zl.Warn("rabbitmq unavailable, events are not published", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	// 5. Ядро бронирования.
	engine := booking.NewEngine(
		calendar.DefaultSchedule(loc),
		availabilityRepo,
		bookingRepo,
		eventRepo,
		booking.WithPublisher(publisher),
		booking.WithLogger(zl.Named("booking")),
	)

	// 6. gRPC-сервер.
	grpcServer, healthSrv := service.NewGRPCServer(service.NewBookingService(engine, zl), zl)

	lis, err := net.Listen("tcp", cfg.App.GRPCAddr)
	if err != nil {
		zl.Fatal("listen grpc", zap.String("addr", cfg.App.GRPCAddr), zap.Error(err))
	}
	go func() {
		zl.Info("gRPC server listening", zap.String("addr", cfg.App.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			zl.Fatal("grpc serve", zap.Error(err))
		}
	}()

	// 7. HTTP-шлюз.
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		JWTSecret:       cfg.App.JWTSecret,
		CORSOrigins:     cfg.App.CORSOrigins,
		RateLimitPerMin: cfg.App.RatePerMin,
		HealthCheck:     sqlDB.Ping,
	}, engine, zl.Named("http"))
	httpServer := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("HTTP server listening", zap.String("addr", cfg.App.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http serve", zap.Error(err))
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	healthSrv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
}

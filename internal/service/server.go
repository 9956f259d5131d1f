package service

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	bookingpb "github.com/Leganyst/slot-booking/internal/api/booking/v1"
)

// NewGRPCServer собирает gRPC-сервер с сервисом бронирования, health и reflection.
//
// BookingService ходит через JSON-кодек и не имеет proto-дескриптора:
// reflection показывает его в списке сервисов, но описать методы не может.
// Reflection оставлен для health и для обнаружения сервисов (grpcurl list).
func NewGRPCServer(svc bookingpb.BookingServiceServer, logger *zap.Logger) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		UnaryRecoveryInterceptor(logger),
		UnaryLoggingInterceptor(logger.Named("grpc")),
	))
	bookingpb.RegisterBookingServiceServer(srv, svc)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(bookingpb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	return srv, healthSrv
}

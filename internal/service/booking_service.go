package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bookingpb "github.com/Leganyst/slot-booking/internal/api/booking/v1"
	"github.com/Leganyst/slot-booking/internal/booking"
	"github.com/Leganyst/slot-booking/internal/calendar"
)

// BookingService: gRPC-фасад над ядром бронирования.
// Принципал приходит в запросе от доверенного шлюза.
type BookingService struct {
	bookingpb.UnimplementedBookingServiceServer

	engine   *booking.Engine
	validate *validator.Validate
	logger   *zap.Logger
}

func NewBookingService(engine *booking.Engine, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		engine:   engine,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *BookingService) location() *time.Location {
	return s.engine.Schedule().Location
}

func (s *BookingService) CreateBooking(ctx context.Context, req *bookingpb.CreateBookingRequest) (*bookingpb.CreateBookingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	at, err := calendar.ParseDateTime(req.BookingDateTime, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "booking_date_time: %v", err)
	}

	b, err := s.engine.CreateBooking(ctx, calendar.Principal{
		UserID:   req.UserID,
		Username: req.Username,
		Role:     calendar.Role(req.Role),
	}, at, req.Notes)
	if err != nil {
		return nil, s.toStatus("create booking", err)
	}
	return &bookingpb.CreateBookingResponse{Booking: MapBooking(b, s.location())}, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, req *bookingpb.CancelBookingRequest) (*bookingpb.CancelBookingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	b, err := s.engine.CancelBooking(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, s.toStatus("cancel booking", err)
	}
	return &bookingpb.CancelBookingResponse{Booking: MapBooking(b, s.location())}, nil
}

func (s *BookingService) ListMyBookings(ctx context.Context, req *bookingpb.ListMyBookingsRequest) (*bookingpb.ListMyBookingsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	page, err := s.engine.UserBookings(ctx, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, s.toStatus("list my bookings", err)
	}
	return &bookingpb.ListMyBookingsResponse{
		Bookings: MapBookings(page.Items, s.location()),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasNext:  page.HasNext,
	}, nil
}

func (s *BookingService) ListAvailableSlots(ctx context.Context, req *bookingpb.ListAvailableSlotsRequest) (*bookingpb.ListAvailableSlotsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	date, err := calendar.ParseDate(req.Date, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "date: %v", err)
	}

	slots, err := s.engine.AvailableSlots(ctx, date)
	if err != nil {
		return nil, s.toStatus("list available slots", err)
	}

	return &bookingpb.ListAvailableSlotsResponse{
		Date:  date.Format(calendar.DateLayout),
		Slots: MapSlots(slots, s.location()),
	}, nil
}

func (s *BookingService) SetAvailability(ctx context.Context, req *bookingpb.SetAvailabilityRequest) (*bookingpb.SetAvailabilityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	date, err := calendar.ParseDate(req.Date, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "date: %v", err)
	}

	rec, err := s.engine.SetAvailability(ctx, date, req.IsAvailable, req.Notes)
	if err != nil {
		return nil, s.toStatus("set availability", err)
	}
	return &bookingpb.SetAvailabilityResponse{Availability: MapAvailability(rec)}, nil
}

func (s *BookingService) ListAvailability(ctx context.Context, req *bookingpb.ListAvailabilityRequest) (*bookingpb.ListAvailabilityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	start, err := calendar.ParseDate(req.StartDate, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "start_date: %v", err)
	}
	end, err := calendar.ParseDate(req.EndDate, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "end_date: %v", err)
	}

	records, err := s.engine.ListAvailability(ctx, start, end)
	if err != nil {
		return nil, s.toStatus("list availability", err)
	}

	return &bookingpb.ListAvailabilityResponse{Records: MapAvailabilities(records)}, nil
}

func (s *BookingService) ListBookingsForDate(ctx context.Context, req *bookingpb.ListBookingsForDateRequest) (*bookingpb.ListBookingsForDateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	date, err := calendar.ParseDate(req.Date, s.location())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "date: %v", err)
	}

	bookings, err := s.engine.BookingsForDate(ctx, date)
	if err != nil {
		return nil, s.toStatus("list bookings for date", err)
	}
	return &bookingpb.ListBookingsForDateResponse{Bookings: MapBookings(bookings, s.location())}, nil
}

func (s *BookingService) ListBookingEvents(ctx context.Context, req *bookingpb.ListBookingEventsRequest) (*bookingpb.ListBookingEventsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	events, err := s.engine.BookingEvents(ctx, req.BookingID)
	if err != nil {
		return nil, s.toStatus("list booking events", err)
	}

	return &bookingpb.ListBookingEventsResponse{Events: MapEvents(events, s.location())}, nil
}

// toStatus переводит ошибку ядра в gRPC-статус. Сообщение начинается с кода
// ошибки, чтобы клиент мог отличить причины с одинаковым статусом.
func (s *BookingService) toStatus(op string, err error) error {
	var be *booking.Error
	if !errors.As(err, &be) {
		s.logger.Error(op+" failed", zap.Error(err))
		return status.Errorf(codes.Internal, "%s: internal error", op)
	}
	return status.Errorf(codeOf(be), "%s: %s", be.Code, be.Message)
}

func codeOf(be *booking.Error) codes.Code {
	switch be {
	case booking.ErrAdminUnavailable:
		return codes.FailedPrecondition
	case booking.ErrSlotAlreadyBooked:
		return codes.AlreadyExists
	case booking.ErrBookingNotFound:
		return codes.NotFound
	case booking.ErrNotOwner:
		return codes.PermissionDenied
	case booking.ErrInvalidPrincipal:
		return codes.Unauthenticated
	default:
		return codes.InvalidArgument
	}
}

package bookingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "booking.v1.BookingService"

const (
	BookingService_CreateBooking_FullMethodName       = "/booking.v1.BookingService/CreateBooking"
	BookingService_CancelBooking_FullMethodName       = "/booking.v1.BookingService/CancelBooking"
	BookingService_ListMyBookings_FullMethodName      = "/booking.v1.BookingService/ListMyBookings"
	BookingService_ListAvailableSlots_FullMethodName  = "/booking.v1.BookingService/ListAvailableSlots"
	BookingService_SetAvailability_FullMethodName     = "/booking.v1.BookingService/SetAvailability"
	BookingService_ListAvailability_FullMethodName    = "/booking.v1.BookingService/ListAvailability"
	BookingService_ListBookingsForDate_FullMethodName = "/booking.v1.BookingService/ListBookingsForDate"
	BookingService_ListBookingEvents_FullMethodName   = "/booking.v1.BookingService/ListBookingEvents"
)

type BookingServiceServer interface {
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	CancelBooking(context.Context, *CancelBookingRequest) (*CancelBookingResponse, error)
	ListMyBookings(context.Context, *ListMyBookingsRequest) (*ListMyBookingsResponse, error)
	ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error)
	SetAvailability(context.Context, *SetAvailabilityRequest) (*SetAvailabilityResponse, error)
	ListAvailability(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error)
	ListBookingsForDate(context.Context, *ListBookingsForDateRequest) (*ListBookingsForDateResponse, error)
	ListBookingEvents(context.Context, *ListBookingEventsRequest) (*ListBookingEventsResponse, error)
}

// UnimplementedBookingServiceServer встраивается в реализации, чтобы
// новые методы не ломали сборку.
type UnimplementedBookingServiceServer struct{}

func (UnimplementedBookingServiceServer) CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBooking not implemented")
}
func (UnimplementedBookingServiceServer) CancelBooking(context.Context, *CancelBookingRequest) (*CancelBookingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelBooking not implemented")
}
func (UnimplementedBookingServiceServer) ListMyBookings(context.Context, *ListMyBookingsRequest) (*ListMyBookingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyBookings not implemented")
}
func (UnimplementedBookingServiceServer) ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAvailableSlots not implemented")
}
func (UnimplementedBookingServiceServer) SetAvailability(context.Context, *SetAvailabilityRequest) (*SetAvailabilityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetAvailability not implemented")
}
func (UnimplementedBookingServiceServer) ListAvailability(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAvailability not implemented")
}
func (UnimplementedBookingServiceServer) ListBookingsForDate(context.Context, *ListBookingsForDateRequest) (*ListBookingsForDateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBookingsForDate not implemented")
}
func (UnimplementedBookingServiceServer) ListBookingEvents(context.Context, *ListBookingEventsRequest) (*ListBookingEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBookingEvents not implemented")
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

// unary собирает обработчик метода: декодирует запрос и пропускает его
// через интерсептор сервера, если он задан.
func unary[Req, Resp any](
	fullMethod string,
	call func(BookingServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateBooking",
			Handler:    unary(BookingService_CreateBooking_FullMethodName, BookingServiceServer.CreateBooking),
		},
		{
			MethodName: "CancelBooking",
			Handler:    unary(BookingService_CancelBooking_FullMethodName, BookingServiceServer.CancelBooking),
		},
		{
			MethodName: "ListMyBookings",
			Handler:    unary(BookingService_ListMyBookings_FullMethodName, BookingServiceServer.ListMyBookings),
		},
		{
			MethodName: "ListAvailableSlots",
			Handler:    unary(BookingService_ListAvailableSlots_FullMethodName, BookingServiceServer.ListAvailableSlots),
		},
		{
			MethodName: "SetAvailability",
			Handler:    unary(BookingService_SetAvailability_FullMethodName, BookingServiceServer.SetAvailability),
		},
		{
			MethodName: "ListAvailability",
			Handler:    unary(BookingService_ListAvailability_FullMethodName, BookingServiceServer.ListAvailability),
		},
		{
			MethodName: "ListBookingsForDate",
			Handler:    unary(BookingService_ListBookingsForDate_FullMethodName, BookingServiceServer.ListBookingsForDate),
		},
		{
			MethodName: "ListBookingEvents",
			Handler:    unary(BookingService_ListBookingEvents_FullMethodName, BookingServiceServer.ListBookingEvents),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.json",
}

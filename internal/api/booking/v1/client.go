package bookingv1

import (
	"context"

	"google.golang.org/grpc"
)

type BookingServiceClient interface {
	CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error)
	CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*CancelBookingResponse, error)
	ListMyBookings(ctx context.Context, in *ListMyBookingsRequest, opts ...grpc.CallOption) (*ListMyBookingsResponse, error)
	ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsRequest, opts ...grpc.CallOption) (*ListAvailableSlotsResponse, error)
	SetAvailability(ctx context.Context, in *SetAvailabilityRequest, opts ...grpc.CallOption) (*SetAvailabilityResponse, error)
	ListAvailability(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error)
	ListBookingsForDate(ctx context.Context, in *ListBookingsForDateRequest, opts ...grpc.CallOption) (*ListBookingsForDateResponse, error)
	ListBookingEvents(ctx context.Context, in *ListBookingEventsRequest, opts ...grpc.CallOption) (*ListBookingEventsResponse, error)
}

type bookingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingServiceClient(cc grpc.ClientConnInterface) BookingServiceClient {
	return &bookingServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookingServiceClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	return invoke[CreateBookingResponse](ctx, c.cc, BookingService_CreateBooking_FullMethodName, in, opts)
}

func (c *bookingServiceClient) CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*CancelBookingResponse, error) {
	return invoke[CancelBookingResponse](ctx, c.cc, BookingService_CancelBooking_FullMethodName, in, opts)
}

func (c *bookingServiceClient) ListMyBookings(ctx context.Context, in *ListMyBookingsRequest, opts ...grpc.CallOption) (*ListMyBookingsResponse, error) {
	return invoke[ListMyBookingsResponse](ctx, c.cc, BookingService_ListMyBookings_FullMethodName, in, opts)
}

func (c *bookingServiceClient) ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsRequest, opts ...grpc.CallOption) (*ListAvailableSlotsResponse, error) {
	return invoke[ListAvailableSlotsResponse](ctx, c.cc, BookingService_ListAvailableSlots_FullMethodName, in, opts)
}

func (c *bookingServiceClient) SetAvailability(ctx context.Context, in *SetAvailabilityRequest, opts ...grpc.CallOption) (*SetAvailabilityResponse, error) {
	return invoke[SetAvailabilityResponse](ctx, c.cc, BookingService_SetAvailability_FullMethodName, in, opts)
}

func (c *bookingServiceClient) ListAvailability(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error) {
	return invoke[ListAvailabilityResponse](ctx, c.cc, BookingService_ListAvailability_FullMethodName, in, opts)
}

func (c *bookingServiceClient) ListBookingsForDate(ctx context.Context, in *ListBookingsForDateRequest, opts ...grpc.CallOption) (*ListBookingsForDateResponse, error) {
	return invoke[ListBookingsForDateResponse](ctx, c.cc, BookingService_ListBookingsForDate_FullMethodName, in, opts)
}

func (c *bookingServiceClient) ListBookingEvents(ctx context.Context, in *ListBookingEventsRequest, opts ...grpc.CallOption) (*ListBookingEventsResponse, error) {
	return invoke[ListBookingEventsResponse](ctx, c.cc, BookingService_ListBookingEvents_FullMethodName, in, opts)
}

package service

import (
	"time"

	bookingpb "github.com/Leganyst/slot-booking/internal/api/booking/v1"
	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/model"
)

// Преобразования моделей в сообщения API. Время отдаётся в часовом поясе расписания.

func MapBooking(b *model.Booking, loc *time.Location) *bookingpb.Booking {
	return &bookingpb.Booking{
		ID:              b.ID.String(),
		BookingDateTime: calendar.FormatDateTime(b.BookingDateTime, loc),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Notes:           b.Notes,
		Username:        b.Username,
		CreatedAt:       calendar.FormatDateTime(b.CreatedAt, loc),
		UpdatedAt:       calendar.FormatDateTime(b.UpdatedAt, loc),
	}
}

func MapBookings(bookings []model.Booking, loc *time.Location) []*bookingpb.Booking {
	out := make([]*bookingpb.Booking, 0, len(bookings))
	for i := range bookings {
		out = append(out, MapBooking(&bookings[i], loc))
	}
	return out
}

func MapSlot(start time.Time, loc *time.Location) *bookingpb.Slot {
	return &bookingpb.Slot{
		Start: calendar.FormatDateTime(start, loc),
		End:   calendar.FormatDateTime(start.Add(calendar.SlotDuration), loc),
		Label: calendar.FormatSlot(start, calendar.SlotDuration, loc),
	}
}

func MapAvailability(a *model.AdminAvailability) *bookingpb.Availability {
	return &bookingpb.Availability{
		ID:            a.ID.String(),
		AvailableDate: a.Date().Format(calendar.DateLayout),
		IsAvailable:   a.IsAvailable,
		Notes:         a.Notes,
	}
}

func MapSlots(slots []time.Time, loc *time.Location) []*bookingpb.Slot {
	out := make([]*bookingpb.Slot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, MapSlot(slot, loc))
	}
	return out
}

func MapAvailabilities(records []model.AdminAvailability) []*bookingpb.Availability {
	out := make([]*bookingpb.Availability, 0, len(records))
	for i := range records {
		out = append(out, MapAvailability(&records[i]))
	}
	return out
}

func MapEvents(events []model.Event, loc *time.Location) []*bookingpb.BookingEvent {
	out := make([]*bookingpb.BookingEvent, 0, len(events))
	for _, e := range events {
		out = append(out, &bookingpb.BookingEvent{
			ID:        e.ID.String(),
			EventType: string(e.EventType),
			UserID:    e.UserID,
			Details:   e.Details,
			CreatedAt: calendar.FormatDateTime(e.CreatedAt, loc),
		})
	}
	return out
}

package mq

import "time"

// BookingEvent: тело сообщений booking.created / booking.cancelled.
type BookingEvent struct {
	Event           string    `json:"event"`
	Version         int       `json:"version"`
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	BookingDateTime time.Time `json:"booking_date_time"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// AvailabilityEvent: тело сообщения availability.updated.
type AvailabilityEvent struct {
	Event       string    `json:"event"`
	Version     int       `json:"version"`
	Date        string    `json:"date"`
	IsAvailable bool      `json:"is_available"`
	OccurredAt  time.Time `json:"occurred_at"`
}

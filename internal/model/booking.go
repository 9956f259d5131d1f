package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	// Ядро не переводит бронирования в completed: это делают внешние системы.
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingDurationMinutes: фиксированная длительность бронирования.
const BookingDurationMinutes = 20

// bookings
//
// Уникальность подтверждённой брони на момент времени обеспечивает частичный
// индекс ux_bookings_confirmed_slot (см. AutoMigrate).
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Владелец: идентификатор из слоя аутентификации; username денормализован для отчётов.
	UserID   string `gorm:"type:varchar(64);not null;index"`
	Username string `gorm:"type:varchar(255)"`

	// Всегда хранится в UTC с точностью до минуты.
	BookingDateTime time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null"`

	Status BookingStatus `gorm:"type:varchar(32);not null;index"`
	Notes  string        `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	CancelledAt *time.Time
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.DurationMinutes == 0 {
		b.DurationMinutes = BookingDurationMinutes
	}
	return nil
}

func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

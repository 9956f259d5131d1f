package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Частичный уникальный индекс: не более одной подтверждённой брони на момент времени.
// Синтаксис поддерживают и Postgres, и SQLite.
const confirmedSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_confirmed_slot
	ON bookings (booking_date_time)
	WHERE status = 'confirmed'`

// AutoMigrate выполняет миграцию всех сущностей ядра бронирования.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&AdminAvailability{},
		&Booking{},
		&Event{},
	); err != nil {
		return err
	}
	if err := db.Exec(confirmedSlotIndex).Error; err != nil {
		return fmt.Errorf("create confirmed slot index: %w", err)
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// admin_availability: признак приёма бронирований на календарную дату.
// Отсутствие записи означает, что день закрыт.
type AdminAvailability struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Чистая дата без времени, не более одной записи на дату.
	AvailableDate datatypes.Date `gorm:"type:date;not null;uniqueIndex"`

	// Без default: иначе GORM пропустит false при вставке.
	IsAvailable bool   `gorm:"not null"`
	Notes       string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AdminAvailability) TableName() string {
	return "admin_availability"
}

func (a *AdminAvailability) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Date возвращает дату записи (полночь UTC).
func (a AdminAvailability) Date() time.Time {
	return time.Time(a.AvailableDate)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/slot-booking/internal/model"
)

type BookingRepository interface {
	// Создать бронирование. Нарушение уникальности подтверждённого слота: ErrDuplicate.
	Create(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Обновить статус бронирования (например, при отмене).
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, actorID string, at time.Time) (*model.Booking, error)
	// Все бронирования пользователя, новые слоты первыми.
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	// Есть ли подтверждённая бронь ровно на момент at.
	ExistsConfirmedAt(ctx context.Context, at time.Time) (bool, error)
	// Подтверждённые брони в интервале [from, to) по возрастанию времени.
	ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create пишет бронь и событие аудита в одной транзакции.
func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.BookingDateTime = booking.BookingDateTime.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		return tx.Create(&model.Event{
			EventType: model.EventTypeBookingCreated,
			CreatedAt: booking.CreatedAt,
			UserID:    booking.UserID,
			BookingID: &booking.ID,
			Details:   fmt.Sprintf("slot %s", booking.BookingDateTime.Format(time.RFC3339)),
		}).Error
	})
	return translate(err)
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// UpdateStatus меняет только целевую строку и пишет событие аудита.
func (r *GormBookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status model.BookingStatus,
	actorID string,
	at time.Time,
) (*model.Booking, error) {
	at = at.UTC()
	update := map[string]any{
		"status":     status,
		"updated_at": at,
	}
	eventType := model.EventTypeBookingUpdated
	if status == model.BookingStatusCancelled {
		update["cancelled_at"] = at
		eventType = model.EventTypeBookingCancelled
	}

	var b model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).Where("id = ?", id).Updates(update)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Create(&model.Event{
			EventType: eventType,
			CreatedAt: at,
			UserID:    actorID,
			BookingID: &b.ID,
			Details:   fmt.Sprintf("status %s", status),
		}).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date_time DESC").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) ExistsConfirmedAt(ctx context.Context, at time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("booking_date_time = ? AND status = ?", at.UTC(), model.BookingStatusConfirmed).
		Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *GormBookingRepository) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("booking_date_time >= ? AND booking_date_time < ?", from.UTC(), to.UTC()).
		Where("status = ?", model.BookingStatusConfirmed).
		Order("booking_date_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

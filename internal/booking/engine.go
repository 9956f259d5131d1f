package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/model"
	"github.com/Leganyst/slot-booking/internal/mq"
	"github.com/Leganyst/slot-booking/internal/repository"
)

// Максимальная длина запрашиваемого диапазона доступности.
const maxAvailabilityRange = 366 * 24 * time.Hour

// Engine: ядро бронирования: проверка слота, создание и отмена броней,
// расчёт свободных слотов. Уникальность подтверждённой брони гарантирует
// хранилище, Engine не держит собственных блокировок.
type Engine struct {
	schedule     calendar.Schedule
	availability repository.AvailabilityRepository
	bookings     repository.BookingRepository
	events       repository.EventRepository

	clock     Clock
	publisher Publisher
	logger    *zap.Logger
}

func NewEngine(
	schedule calendar.Schedule,
	availability repository.AvailabilityRepository,
	bookings repository.BookingRepository,
	events repository.EventRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		schedule:     schedule,
		availability: availability,
		bookings:     bookings,
		events:       events,
		clock:        systemClock{},
		publisher:    nopPublisher{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Schedule() calendar.Schedule {
	return e.schedule
}

// Slots: все слоты даты без учёта доступности и занятости.
func (e *Engine) Slots(date time.Time) []time.Time {
	return e.schedule.Slots(date)
}

// Validate проверяет момент at. Порядок проверок фиксирован, возвращается
// первая ошибка: доступность дня, окно, сетка, прошлое.
func (e *Engine) Validate(ctx context.Context, at time.Time) error {
	open, err := e.availability.IsOpen(ctx, e.schedule.Date(at))
	if err != nil {
		return fmt.Errorf("check availability: %w", err)
	}
	if !open {
		return ErrAdminUnavailable
	}

	switch err := e.schedule.CheckSlot(at); {
	case errors.Is(err, calendar.ErrOutsideWindows):
		return ErrOutsideOperatingHours
	case errors.Is(err, calendar.ErrMisaligned):
		return ErrMisalignedSlot
	}

	if at.Before(e.clock.Now()) {
		return ErrInPast
	}
	return nil
}

// CreateBooking создаёт подтверждённую бронь для principal на момент at.
func (e *Engine) CreateBooking(
	ctx context.Context,
	principal calendar.Principal,
	at time.Time,
	notes string,
) (*model.Booking, error) {
	p, err := calendar.ValidatePrincipal(principal)
	if err != nil {
		return nil, ErrInvalidPrincipal
	}

	if err := e.Validate(ctx, at); err != nil {
		e.reject("create booking", err, zap.String("user_id", p.UserID), zap.Time("at", at))
		return nil, err
	}

	// Предварительная проверка; окончательно решает уникальный индекс.
	exists, err := e.bookings.ExistsConfirmedAt(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if exists {
		e.reject("create booking", ErrSlotAlreadyBooked, zap.String("user_id", p.UserID), zap.Time("at", at))
		return nil, ErrSlotAlreadyBooked
	}

	now := e.clock.Now()
	b := &model.Booking{
		UserID:          p.UserID,
		Username:        p.Username,
		BookingDateTime: at,
		DurationMinutes: model.BookingDurationMinutes,
		Status:          model.BookingStatusConfirmed,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			e.reject("create booking", ErrSlotAlreadyBooked, zap.String("user_id", p.UserID), zap.Time("at", at))
			return nil, ErrSlotAlreadyBooked
		}
		e.logger.Error("create booking failed", zap.String("user_id", p.UserID), zap.Error(err))
		return nil, fmt.Errorf("create booking: %w", err)
	}

	e.logger.Info("booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("user_id", b.UserID),
		zap.Time("at", b.BookingDateTime),
	)
	e.publish(ctx, mq.KeyBookingCreated, bookingEvent(mq.KeyBookingCreated, b, now))
	return b, nil
}

// CancelBooking отменяет бронь. Отменить может только владелец;
// повторная отмена успешна и обновляет updated_at.
func (e *Engine) CancelBooking(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	id, err := uuid.Parse(strings.TrimSpace(bookingID))
	if err != nil {
		return nil, ErrBookingNotFound
	}

	b, err := e.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !b.IsOwnedBy(userID) {
		e.reject("cancel booking", ErrNotOwner, zap.String("booking_id", bookingID), zap.String("user_id", userID))
		return nil, ErrNotOwner
	}

	now := e.clock.Now()
	updated, err := e.bookings.UpdateStatus(ctx, id, model.BookingStatusCancelled, userID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		e.logger.Error("cancel booking failed", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	e.logger.Info("booking cancelled", zap.String("booking_id", bookingID), zap.String("user_id", userID))
	e.publish(ctx, mq.KeyBookingCancelled, bookingEvent(mq.KeyBookingCancelled, updated, now))
	return updated, nil
}

// AvailableSlots: слоты даты без занятых и прошедших, в исходном порядке.
// Закрытый день даёт пустой список.
func (e *Engine) AvailableSlots(ctx context.Context, date time.Time) ([]time.Time, error) {
	open, err := e.availability.IsOpen(ctx, e.schedule.Date(date))
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !open {
		return []time.Time{}, nil
	}

	booked, err := e.BookingsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.BookingDateTime.UnixNano()] = struct{}{}
	}

	now := e.clock.Now()
	slots := e.schedule.Slots(date)
	free := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if _, ok := taken[s.UnixNano()]; ok {
			continue
		}
		if s.Before(now) {
			continue
		}
		free = append(free, s)
	}
	return free, nil
}

// BookingsForDate: подтверждённые брони на дату по возрастанию времени.
func (e *Engine) BookingsForDate(ctx context.Context, date time.Time) ([]model.Booking, error) {
	day := e.schedule.Day(date)
	bookings, err := e.bookings.ListConfirmedBetween(ctx, day.Start, day.End)
	if err != nil {
		return nil, fmt.Errorf("list bookings for date: %w", err)
	}
	return bookings, nil
}

// UserBookings: брони пользователя, новые слоты первыми, постранично.
func (e *Engine) UserBookings(ctx context.Context, userID string, page, pageSize int) (calendar.Page[model.Booking], error) {
	bookings, err := e.bookings.ListByUser(ctx, userID)
	if err != nil {
		return calendar.Page[model.Booking]{}, fmt.Errorf("list user bookings: %w", err)
	}
	return calendar.Paginate(bookings, page, pageSize), nil
}

// BookingEvents: история событий брони.
func (e *Engine) BookingEvents(ctx context.Context, bookingID string) ([]model.Event, error) {
	id, err := uuid.Parse(strings.TrimSpace(bookingID))
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if _, err := e.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	events, err := e.events.ListByBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list booking events: %w", err)
	}
	return events, nil
}

// SetAvailability открывает или закрывает дату. Уже существующие брони не трогает.
func (e *Engine) SetAvailability(ctx context.Context, date time.Time, open bool, notes string) (*model.AdminAvailability, error) {
	day := e.schedule.Date(date)
	rec, err := e.availability.Upsert(ctx, day, open, strings.TrimSpace(notes))
	if err != nil {
		e.logger.Error("set availability failed", zap.Time("date", day), zap.Error(err))
		return nil, fmt.Errorf("set availability: %w", err)
	}

	e.logger.Info("availability updated", zap.String("date", day.Format(calendar.DateLayout)), zap.Bool("open", open))
	e.publish(ctx, mq.KeyAvailabilityUpdated, mq.AvailabilityEvent{
		Event:       mq.KeyAvailabilityUpdated,
		Version:     1,
		Date:        day.Format(calendar.DateLayout),
		IsAvailable: open,
		OccurredAt:  e.clock.Now().UTC(),
	})
	return rec, nil
}

// ListAvailability: записи доступности в [start, end] включительно.
// Перепутанные границы меняются местами, диапазон ограничен 366 днями.
func (e *Engine) ListAvailability(ctx context.Context, start, end time.Time) ([]model.AdminAvailability, error) {
	tr, err := calendar.NormalizeTimeRange(
		e.schedule.Date(start),
		e.schedule.Date(end),
		e.schedule.Location,
		maxAvailabilityRange,
	)
	if err != nil {
		return nil, ErrInvalidRange
	}

	records, err := e.availability.ListBetween(ctx, tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return records, nil
}

func (e *Engine) reject(op string, err error, fields ...zap.Field) {
	var be *Error
	if errors.As(err, &be) {
		fields = append(fields, zap.String("code", be.Code))
	}
	e.logger.Info(op+" rejected", fields...)
}

// Ошибка публикации не откатывает уже сохранённое изменение.
func (e *Engine) publish(ctx context.Context, key string, v any) {
	if err := e.publisher.PublishJSON(ctx, key, v); err != nil {
		e.logger.Warn("publish event failed", zap.String("key", key), zap.Error(err))
	}
}

func bookingEvent(name string, b *model.Booking, at time.Time) mq.BookingEvent {
	return mq.BookingEvent{
		Event:           name,
		Version:         1,
		BookingID:       b.ID.String(),
		UserID:          b.UserID,
		BookingDateTime: b.BookingDateTime.UTC(),
		Status:          string(b.Status),
		OccurredAt:      at.UTC(),
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/slot-booking/internal/calendar"
	"github.com/Leganyst/slot-booking/internal/db"
	"github.com/Leganyst/slot-booking/internal/model"
	"github.com/Leganyst/slot-booking/internal/repository"
)

var (
	june9  = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	june10 = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
)

type testEnv struct {
	engine       *Engine
	bookings     *repository.GormBookingRepository
	availability *repository.GormAvailabilityRepository
	publisher    *recordingPublisher
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		bookings:     repository.NewGormBookingRepository(gdb),
		availability: repository.NewGormAvailabilityRepository(gdb),
		publisher:    &recordingPublisher{},
	}
	env.engine = NewEngine(
		calendar.DefaultSchedule(time.UTC),
		env.availability,
		env.bookings,
		repository.NewGormEventRepository(gdb),
		WithClock(ClockFunc(func() time.Time { return now })),
		WithPublisher(env.publisher),
	)
	return env
}

func (env *testEnv) open(t *testing.T, date time.Time) {
	t.Helper()
	if _, err := env.engine.SetAvailability(context.Background(), date, true, ""); err != nil {
		t.Fatalf("open %v: %v", date, err)
	}
}

func at(hour, minute int) time.Time {
	return june10.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func alice() calendar.Principal { return calendar.Principal{UserID: "1", Username: "alice"} }
func bob() calendar.Principal   { return calendar.Principal{UserID: "2", Username: "bob"} }

func TestEngine_Scenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)
	env.open(t, june10)

	b, err := env.engine.CreateBooking(ctx, alice(), at(6, 0), "first ride")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.Status != model.BookingStatusConfirmed || b.ID == uuid.Nil {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.DurationMinutes != 20 || b.Username != "alice" {
		t.Fatalf("unexpected booking fields %+v", b)
	}

	if _, err := env.engine.CreateBooking(ctx, bob(), at(6, 0), ""); !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("second booking: expected ErrSlotAlreadyBooked, got %v", err)
	}
	if _, err := env.engine.CreateBooking(ctx, alice(), at(6, 10), ""); !errors.Is(err, ErrMisalignedSlot) {
		t.Fatalf("06:10: expected ErrMisalignedSlot, got %v", err)
	}
	if _, err := env.engine.CreateBooking(ctx, alice(), at(12, 0), ""); !errors.Is(err, ErrOutsideOperatingHours) {
		t.Fatalf("12:00: expected ErrOutsideOperatingHours, got %v", err)
	}
	if _, err := env.engine.CreateBooking(ctx, alice(), at(24+6, 0), ""); !errors.Is(err, ErrAdminUnavailable) {
		t.Fatalf("closed date: expected ErrAdminUnavailable, got %v", err)
	}

	keys := env.publisher.Keys()
	if len(keys) != 2 || keys[0] != "availability.updated" || keys[1] != "booking.created" {
		t.Fatalf("unexpected published events %v", keys)
	}
}

func TestEngine_Validate_Order(t *testing.T) {
	ctx := context.Background()
	// Часы стоят после всех слотов 10 июня.
	env := newTestEnv(t, june10.Add(23*time.Hour))

	// Закрытый день побеждает все остальные причины.
	if err := env.engine.Validate(ctx, at(12, 10)); !errors.Is(err, ErrAdminUnavailable) {
		t.Fatalf("expected ErrAdminUnavailable, got %v", err)
	}

	env.open(t, june10)

	cases := []struct {
		name string
		at   time.Time
		want error
	}{
		{"window before alignment", at(12, 10), ErrOutsideOperatingHours},
		{"window before past", at(5, 0), ErrOutsideOperatingHours},
		{"alignment before past", at(6, 10), ErrMisalignedSlot},
		{"past", at(6, 0), ErrInPast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := env.engine.Validate(ctx, tc.at); !errors.Is(err, tc.want) {
				t.Fatalf("Validate(%v) = %v, want %v", tc.at, err, tc.want)
			}
		})
	}
}

func TestEngine_Validate_NowIsNotPast(t *testing.T) {
	env := newTestEnv(t, at(17, 0))
	env.open(t, june10)

	if err := env.engine.Validate(context.Background(), at(17, 0)); err != nil {
		t.Fatalf("slot starting now must be valid, got %v", err)
	}
}

func TestEngine_CreateBooking_InvalidPrincipal(t *testing.T) {
	env := newTestEnv(t, june9)
	env.open(t, june10)

	_, err := env.engine.CreateBooking(context.Background(), calendar.Principal{UserID: " "}, at(6, 0), "")
	if !errors.Is(err, ErrInvalidPrincipal) {
		t.Fatalf("expected ErrInvalidPrincipal, got %v", err)
	}
}

func TestEngine_CancelBooking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)
	env.open(t, june10)

	// Каждое действие на минуту позже предыдущего: события упорядочены по времени.
	var mu sync.Mutex
	tick := june9
	env.engine.clock = ClockFunc(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Minute)
		return tick
	})

	b, err := env.engine.CreateBooking(ctx, alice(), at(17, 20), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.engine.CancelBooking(ctx, b.ID.String(), bob().UserID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	stored, err := env.bookings.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if stored.Status != model.BookingStatusConfirmed {
		t.Fatalf("status changed by non-owner: %s", stored.Status)
	}

	cancelled, err := env.engine.CancelBooking(ctx, b.ID.String(), alice().UserID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.BookingStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled booking %+v", cancelled)
	}

	// Повторная отмена успешна.
	again, err := env.engine.CancelBooking(ctx, b.ID.String(), alice().UserID)
	if err != nil {
		t.Fatalf("re-cancel: %v", err)
	}
	if again.Status != model.BookingStatusCancelled || !again.UpdatedAt.After(cancelled.UpdatedAt) {
		t.Fatalf("re-cancel must keep status and re-stamp updated_at: %+v", again)
	}

	// Отменённая бронь освобождает слот.
	if _, err := env.engine.CreateBooking(ctx, bob(), at(17, 20), ""); err != nil {
		t.Fatalf("rebook cancelled slot: %v", err)
	}

	events, err := env.engine.BookingEvents(ctx, b.ID.String())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 3 || events[0].EventType != model.EventTypeBookingCreated ||
		events[1].EventType != model.EventTypeBookingCancelled {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestEngine_CancelBooking_NotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		if _, err := env.engine.CancelBooking(ctx, id, "1"); !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("CancelBooking(%q): expected ErrBookingNotFound, got %v", id, err)
		}
	}
	if _, err := env.engine.BookingEvents(ctx, uuid.NewString()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("BookingEvents: expected ErrBookingNotFound, got %v", err)
	}
}

func TestEngine_ConcurrentCreate_ExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)
	env.open(t, june10)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			p := calendar.Principal{UserID: fmt.Sprintf("user-%d", i)}
			_, err := env.engine.CreateBooking(ctx, p, at(18, 0), "")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotAlreadyBooked):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if successes != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", workers-1, successes, conflicts)
	}

	booked, err := env.engine.BookingsForDate(ctx, june10)
	if err != nil {
		t.Fatalf("bookings for date: %v", err)
	}
	if len(booked) != 1 {
		t.Fatalf("expected exactly one confirmed booking, got %d", len(booked))
	}
}

func TestEngine_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	// 06:30: три утренних слота уже прошли.
	env := newTestEnv(t, at(6, 30))
	env.open(t, june10)

	for _, tm := range []time.Time{at(7, 0), at(17, 40)} {
		if _, err := env.engine.CreateBooking(ctx, alice(), tm, ""); err != nil {
			t.Fatalf("book %v: %v", tm, err)
		}
	}

	free, err := env.engine.AvailableSlots(ctx, june10)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}

	want := []time.Time{at(6, 40), at(7, 20), at(17, 0), at(17, 20), at(18, 0), at(18, 20)}
	if len(free) != len(want) {
		t.Fatalf("expected %d free slots, got %v", len(want), free)
	}
	all := env.engine.Slots(june10)
	for i := range want {
		if !free[i].Equal(want[i]) {
			t.Fatalf("slot %d = %v, want %v", i, free[i], want[i])
		}
		found := false
		for _, s := range all {
			if s.Equal(free[i]) {
				found = true
			}
		}
		if !found {
			t.Fatalf("free slot %v is not a generated slot", free[i])
		}
	}
}

func TestEngine_ClosedDate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)

	free, err := env.engine.AvailableSlots(ctx, june10)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if free == nil || len(free) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", free)
	}

	// Закрытие даты не отменяет существующие брони.
	env.open(t, june10)
	if _, err := env.engine.CreateBooking(ctx, alice(), at(6, 20), ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.engine.SetAvailability(ctx, june10, false, "closed"); err != nil {
		t.Fatalf("close date: %v", err)
	}
	if _, err := env.engine.CreateBooking(ctx, bob(), at(6, 40), ""); !errors.Is(err, ErrAdminUnavailable) {
		t.Fatalf("expected ErrAdminUnavailable, got %v", err)
	}
	booked, err := env.engine.BookingsForDate(ctx, june10)
	if err != nil || len(booked) != 1 {
		t.Fatalf("expected existing booking to survive, got %d err=%v", len(booked), err)
	}
}

func TestEngine_UserBookings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)
	env.open(t, june10)

	for _, tm := range []time.Time{at(6, 0), at(18, 20), at(7, 0)} {
		if _, err := env.engine.CreateBooking(ctx, alice(), tm, ""); err != nil {
			t.Fatalf("book %v: %v", tm, err)
		}
	}
	if _, err := env.engine.CreateBooking(ctx, bob(), at(17, 0), ""); err != nil {
		t.Fatalf("book bob: %v", err)
	}

	page, err := env.engine.UserBookings(ctx, alice().UserID, 1, 2)
	if err != nil {
		t.Fatalf("user bookings: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 || !page.HasNext {
		t.Fatalf("unexpected page %+v", page)
	}
	if !page.Items[0].BookingDateTime.Equal(at(18, 20)) || !page.Items[1].BookingDateTime.Equal(at(7, 0)) {
		t.Fatalf("expected newest slots first, got %v and %v",
			page.Items[0].BookingDateTime, page.Items[1].BookingDateTime)
	}
}

func TestEngine_ListAvailability(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, june9)

	env.open(t, june10)
	env.open(t, june10.AddDate(0, 0, 2))
	if _, err := env.engine.SetAvailability(ctx, june10.AddDate(0, 0, 1), false, "holiday"); err != nil {
		t.Fatalf("set availability: %v", err)
	}

	// Границы перепутаны и включительны.
	records, err := env.engine.ListAvailability(ctx, june10.AddDate(0, 0, 2), june10)
	if err != nil {
		t.Fatalf("list availability: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1].IsAvailable || records[1].Notes != "holiday" {
		t.Fatalf("unexpected middle record %+v", records[1])
	}

	if _, err := env.engine.ListAvailability(ctx, time.Time{}, june10); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

// Конфликт, который обнаружил только уникальный индекс.
type racingBookings struct {
	repository.BookingRepository
}

func (racingBookings) ExistsConfirmedAt(context.Context, time.Time) (bool, error) {
	return false, nil
}

func (racingBookings) Create(context.Context, *model.Booking) error {
	return fmt.Errorf("%w: unique constraint", repository.ErrDuplicate)
}

type openAvailability struct {
	repository.AvailabilityRepository
}

func (openAvailability) IsOpen(context.Context, time.Time) (bool, error) { return true, nil }

func TestEngine_CreateBooking_DuplicateAtInsert(t *testing.T) {
	e := NewEngine(
		calendar.DefaultSchedule(time.UTC),
		openAvailability{},
		racingBookings{},
		nil,
		WithClock(ClockFunc(func() time.Time { return june9 })),
	)

	_, err := e.CreateBooking(context.Background(), alice(), at(6, 0), "")
	if !errors.Is(err, ErrSlotAlreadyBooked) {
		t.Fatalf("expected ErrSlotAlreadyBooked, got %v", err)
	}
}

type brokenAvailability struct {
	repository.AvailabilityRepository
}

func (brokenAvailability) IsOpen(context.Context, time.Time) (bool, error) {
	return false, errors.New("connection refused")
}

func TestEngine_InfrastructureErrorIsNotDomainError(t *testing.T) {
	e := NewEngine(calendar.DefaultSchedule(time.UTC), brokenAvailability{}, racingBookings{}, nil)

	err := e.Validate(context.Background(), at(6, 0))
	var be *Error
	if err == nil || errors.As(err, &be) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

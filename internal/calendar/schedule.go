package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOutsideWindows = errors.New("time is outside operating windows")
	ErrMisaligned     = errors.New("time is not aligned to the slot grid")
)

// SlotDuration: длительность одного слота и шаг сетки.
const SlotDuration = 20 * time.Minute

// ClockTime: время суток в минутах от полуночи.
type ClockTime int

func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func clockOf(t time.Time) ClockTime {
	return Clock(t.Hour(), t.Minute())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window: суточное окно работы [Start, End).
type Window struct {
	Start ClockTime
	End   ClockTime
}

func (w Window) Contains(c ClockTime) bool {
	return c >= w.Start && c < w.End
}

// Фиксированные окна: утро и вечер.
var (
	MorningWindow = Window{Start: Clock(6, 0), End: Clock(7, 30)}
	EveningWindow = Window{Start: Clock(17, 0), End: Clock(18, 30)}
)

// Schedule описывает сетку слотов: окна, шаг и часовой пояс сервиса.
// Генератор и валидатор используют одни и те же значения.
type Schedule struct {
	Windows  []Window
	Slot     time.Duration
	Location *time.Location
}

// DefaultSchedule: два окна по 20 минут в часовом поясе loc.
func DefaultSchedule(loc *time.Location) Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return Schedule{
		Windows:  []Window{MorningWindow, EveningWindow},
		Slot:     SlotDuration,
		Location: loc,
	}
}

func (s Schedule) stepMinutes() int {
	return int(s.Slot / time.Minute)
}

// Date возвращает полночь календарного дня t в часовом поясе сервиса.
func (s Schedule) Date(t time.Time) time.Time {
	return DateOnly(t.In(s.Location))
}

// Day возвращает сутки [00:00, 00:00 следующего дня) для даты.
func (s Schedule) Day(date time.Time) TimeRange {
	start := s.Date(date)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// Slots возвращает упорядоченный список начал слотов на дату:
// сначала окна в порядке объявления, внутри окна по возрастанию.
// Слот включается, если его начало строго меньше конца окна.
func (s Schedule) Slots(date time.Time) []time.Time {
	day := s.Date(date)
	year, month, d := day.Date()
	step := s.stepMinutes()

	var slots []time.Time
	for _, w := range s.Windows {
		for m := w.Start; m < w.End; m += ClockTime(step) {
			slots = append(slots, time.Date(year, month, d, 0, int(m), 0, 0, s.Location))
		}
	}
	return slots
}

// CheckSlot проверяет, что t попадает в одно из окон и лежит на сетке,
// отсчитанной от начала окна, без секунд и долей секунды.
func (s Schedule) CheckSlot(t time.Time) error {
	local := t.In(s.Location)
	c := clockOf(local)

	for _, w := range s.Windows {
		if !w.Contains(c) {
			continue
		}
		if int(c-w.Start)%s.stepMinutes() != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
			return ErrMisaligned
		}
		return nil
	}
	return ErrOutsideWindows
}

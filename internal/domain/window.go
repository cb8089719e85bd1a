package domain

import (
	"fmt"
	"time"
)

// ServiceWindow рабочее окно услуги в минутах от начала дня
type ServiceWindow struct {
	EarliestMinute  int
	LatestMinute    int
	DurationMinutes int
}

// Validate проверяет корректность окна
func (w ServiceWindow) Validate() error {
	if w.EarliestMinute < 0 || w.EarliestMinute > MinutesInDay {
		return fmt.Errorf("earliest minute %d out of range", w.EarliestMinute)
	}
	if w.LatestMinute < 0 || w.LatestMinute > MinutesInDay {
		return fmt.Errorf("latest minute %d out of range", w.LatestMinute)
	}
	if w.EarliestMinute >= w.LatestMinute {
		return fmt.Errorf("earliest minute %d must be before latest minute %d", w.EarliestMinute, w.LatestMinute)
	}
	if w.DurationMinutes < 0 || w.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("duration %d out of range", w.DurationMinutes)
	}
	return nil
}

// Fits возвращает true, если услуга, начатая в minute, целиком укладывается в окно.
// Границы включительные.
func (w ServiceWindow) Fits(minute int) bool {
	return minute >= w.EarliestMinute && minute+w.DurationMinutes <= w.LatestMinute
}

// DateRange диапазон дат (включительно). Нулевая граница означает отсутствие ограничения.
type DateRange struct {
	From time.Time
	To   time.Time
}

// AllDates диапазон без ограничений
func AllDates() DateRange {
	return DateRange{}
}

// SingleDate диапазон из одной даты
func SingleDate(date time.Time) DateRange {
	return DateRange{From: date, To: date}
}

// IsUnbounded returns true if neither bound is set
func (r DateRange) IsUnbounded() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Validate проверяет порядок границ
func (r DateRange) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return fmt.Errorf("range end %s is before start %s", r.To.Format(DateFormat), r.From.Format(DateFormat))
	}
	return nil
}

// Contains сравнивает только календарную дату
func (r DateRange) Contains(date time.Time) bool {
	d := date.Format(DateFormat)
	if !r.From.IsZero() && d < r.From.Format(DateFormat) {
		return false
	}
	if !r.To.IsZero() && d > r.To.Format(DateFormat) {
		return false
	}
	return true
}

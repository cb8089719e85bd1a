package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// AvailabilitySlot открытое окно, объявленное владельцем расписания
type AvailabilitySlot struct {
	Date time.Time
	Time types.TimeString
}

// Key ключ слота вида "2024-06-10T09:00"
func (s AvailabilitySlot) Key() string {
	return SlotKey(s.Date, s.Time)
}

// SlotKey строит ключ занятости по дате и времени
func SlotKey(date time.Time, t types.TimeString) string {
	return date.Format(DateFormat) + "T" + string(t)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateFormat)
	}
	return d, nil
}

// OpenSlotSet свободные слоты: дата -> упорядоченный список времени.
// Дата без свободных слотов в наборе отсутствует.
type OpenSlotSet map[string][]types.TimeString

// Add добавляет время к дате
func (s OpenSlotSet) Add(date string, t types.TimeString) {
	s[date] = append(s[date], t)
}

// Normalize сортирует время по возрастанию, убирает дубликаты и пустые даты
func (s OpenSlotSet) Normalize() {
	for date, times := range s {
		if len(times) == 0 {
			delete(s, date)
			continue
		}

		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

		uniq := times[:1]
		for _, t := range times[1:] {
			if t != uniq[len(uniq)-1] {
				uniq = append(uniq, t)
			}
		}
		s[date] = uniq
	}
}

// Dates возвращает даты набора по возрастанию
func (s OpenSlotSet) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

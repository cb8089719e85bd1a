package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// validateRequest проверяет дату и время до обращения к хранилищу.
// Остальные поля не проверяются.
func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return time.Time{}, "", fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid time %q: %v", ErrInvalidInput, req.Time, err)
	}

	return date, t, nil
}

// isOffered проверяет, что слот есть в снимке расписания
func isOffered(slots []domain.AvailabilitySlot, date time.Time, t types.TimeString) bool {
	key := domain.SlotKey(date, t)
	for _, s := range slots {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// reminderTime момент напоминания: начало встречи в часовом поясе владельца минус lead
func reminderTime(date time.Time, t types.TimeString, loc *time.Location, lead time.Duration) (time.Time, error) {
	start, err := t.On(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-lead), nil
}

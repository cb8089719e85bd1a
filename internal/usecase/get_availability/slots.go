package get_availability

import (
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// resolveOpenSlots вычитает занятые ключи из объявленных слотов и применяет окно.
// Слоты с некорректным временем при заданном окне пропускаются и возвращаются в skipped.
func resolveOpenSlots(
	slots []domain.AvailabilitySlot,
	reservations []*domain.Reservation,
	window *domain.ServiceWindow,
) (open domain.OpenSlotSet, skipped []string) {
	occupied := make(map[string]struct{}, len(reservations))
	for _, r := range reservations {
		occupied[r.Key()] = struct{}{}
	}

	open = domain.OpenSlotSet{}

	for _, s := range slots {
		if _, taken := occupied[s.Key()]; taken {
			continue
		}

		if window != nil {
			minute, err := s.Time.MinuteOfDay()
			if err != nil {
				skipped = append(skipped, s.Key())
				continue
			}
			if !window.Fits(minute) {
				continue
			}
		}

		open.Add(s.Date.Format(domain.DateFormat), s.Time)
	}

	open.Normalize()
	return open, skipped
}

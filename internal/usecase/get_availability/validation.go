package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// parseRange разбирает необязательный диапазон дат
func parseRange(req *Request) (domain.DateRange, error) {
	var dates domain.DateRange

	if req.From != "" {
		from, err := domain.ParseDate(req.From)
		if err != nil {
			return dates, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
		}
		dates.From = from
	}

	if req.To != "" {
		to, err := domain.ParseDate(req.To)
		if err != nil {
			return dates, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
		}
		dates.To = to
	}

	if err := dates.Validate(); err != nil {
		return dates, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return dates, nil
}

// buildWindow собирает рабочее окно из каталога и явных параметров.
// Возвращает nil, если фильтр не запрошен.
func buildWindow(req *Request, catalog *domain.ServiceCatalog) (*domain.ServiceWindow, error) {
	if req.Service == "" && req.DurationMinutes == nil && req.Earliest == "" && req.Latest == "" {
		return nil, nil
	}

	w := domain.ServiceWindow{
		EarliestMinute: catalog.EarliestMinute,
		LatestMinute:   catalog.LatestMinute,
	}

	if req.Service != "" {
		duration, ok := catalog.Duration(req.Service)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, req.Service)
		}
		w.DurationMinutes = duration
	}

	if req.DurationMinutes != nil {
		w.DurationMinutes = *req.DurationMinutes
	}

	if req.Earliest != "" {
		minute, err := types.TimeString(req.Earliest).MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("%w: earliest: %v", ErrInvalidInput, err)
		}
		w.EarliestMinute = minute
	}

	if req.Latest != "" {
		minute, err := types.TimeString(req.Latest).MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("%w: latest: %v", ErrInvalidInput, err)
		}
		w.LatestMinute = minute
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &w, nil
}

package get_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-SlotLedger/internal/usecase/get_availability"
)

// AvailabilityResponse дата -> список времени "HH:MM" по возрастанию
type AvailabilityResponse map[string][]string

// requestFromQuery собирает запрос use case из query параметров
func requestFromQuery(r *http.Request) (*getAvailability.Request, error) {
	req := &getAvailability.Request{
		From:     handlers.QueryParam(r, "from"),
		To:       handlers.QueryParam(r, "to"),
		Service:  handlers.QueryParam(r, "service"),
		Earliest: handlers.QueryParam(r, "earliest"),
		Latest:   handlers.QueryParam(r, "latest"),
	}

	if raw := handlers.QueryParam(r, "durationMinutes"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &d
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) AvailabilityResponse {
	out := make(AvailabilityResponse, len(resp.Slots))
	for date, times := range resp.Slots {
		list := make([]string, 0, len(times))
		for _, t := range times {
			list = append(list, t.String())
		}
		out[date] = list
	}
	return out
}

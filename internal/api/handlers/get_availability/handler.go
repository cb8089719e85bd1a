package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	getAvailability "github.com/m04kA/SMC-SlotLedger/internal/usecase/get_availability"
)

const (
	msgInvalidDuration  = "durationMinutes must be a whole number of minutes."
	msgInvalidQuery     = "Invalid availability query."
	msgUnknownService   = "Unknown service."
	msgStoreUnavailable = "Availability is temporarily unavailable."
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: from, to (YYYY-MM-DD), service, durationMinutes, earliest, latest (HH:MM), все необязательные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid durationMinutes: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrUnknownService):
			h.logger.Warn("GET /availability - Unknown service: %q", req.Service)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			// Частичный ответ не отдаем
			h.logger.Error("GET /availability - Failed to resolve availability: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, string(domain.KindStoreUnavailable), msgStoreUnavailable)
		}
		return
	}

	h.logger.Info("GET /availability - Resolved %d dates", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

const (
	msgInvalidRange = "Invalid date range."
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots (только владелец)
// Объявленные слоты без вычета бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{
		From: handlers.QueryParam(r, "from"),
		To:   handlers.QueryParam(r, "to"),
	}

	slots, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /slots - Failed to list slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Listed slots on %d dates", len(slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}

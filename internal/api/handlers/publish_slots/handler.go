package publish_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidSchedule    = "Invalid schedule: check dates, times and step."
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

// Handle POST /api/v1/slots (только владелец)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.PublishRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Publish(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("POST /slots - Failed to publish slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Published %d slots on %d dates", resp.Published, len(resp.Dates))
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

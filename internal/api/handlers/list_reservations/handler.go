package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/service/reservations"
	"github.com/m04kA/SMC-SlotLedger/internal/service/reservations/models"
)

const (
	msgInvalidFilter = "Invalid filter: use from/to as YYYY-MM-DD and status booked or blocked."
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: from, to (YYYY-MM-DD), status (booked | blocked), все необязательные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{
		From: handlers.QueryParam(r, "from"),
		To:   handlers.QueryParam(r, "to"),
	}
	if status := handlers.QueryParam(r, "status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}

package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_block"
)

const (
	msgSlotBlocked = "Slot blocked successfully."
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocks (только владелец)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondDomainError(w, createBlock.ErrInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid block data: %v", err)
			handlers.RespondDomainError(w, createBlock.ErrInvalidInput)

		case errors.Is(err, createBlock.ErrSlotTaken):
			h.logger.Warn("POST /blocks - Slot already reserved: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondDomainError(w, createBlock.ErrSlotTaken)

		default:
			h.logger.Error("POST /blocks - Failed to block slot: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondDomainError(w, createBlock.ErrStoreUnavailable)
		}
		return
	}

	h.logger.Info("POST /blocks - Slot blocked: id=%d, date=%s, time=%s", result.ID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, msgSlotBlocked))
}

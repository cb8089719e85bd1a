package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_booking"
)

const (
	msgBookingSuccessful = "Booking successful!"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondDomainError(w, createBooking.ErrInvalidInput)
		return
	}

	useCaseReq := req.ToUseCaseRequest()

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrPartialWriteDegraded) && result != nil:
			// Бронирование сохранено, потеряны только детали
			h.logger.Warn("POST /bookings - Booking created with warnings: booking_id=%d, warnings=%v",
				result.ID, result.Warnings)
			handlers.RespondJSON(w, http.StatusCreated, &CreateBookingResponse{
				Message:  createBooking.ErrPartialWriteDegraded.Message,
				Booking:  FromUseCaseResponse(result),
				Degraded: true,
				Warnings: result.Warnings,
			})

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking data: %v", err)
			handlers.RespondDomainError(w, createBooking.ErrInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotOffered):
			h.logger.Warn("POST /bookings - Slot not offered: date=%s, time=%s", useCaseReq.Date, useCaseReq.Time)
			handlers.RespondDomainError(w, createBooking.ErrSlotNotOffered)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot already taken: date=%s, time=%s", useCaseReq.Date, useCaseReq.Time)
			handlers.RespondDomainError(w, createBooking.ErrSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				useCaseReq.Date, useCaseReq.Time, err)
			handlers.RespondDomainError(w, createBooking.ErrStoreUnavailable)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, time=%s",
		result.ID, useCaseReq.Date, useCaseReq.Time)
	handlers.RespondJSON(w, http.StatusCreated, &CreateBookingResponse{
		Message: msgBookingSuccessful,
		Booking: FromUseCaseResponse(result),
	})
}

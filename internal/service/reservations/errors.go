package reservations

import (
	"errors"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "Invalid date range.")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindStoreUnavailable, "service: internal error")
)

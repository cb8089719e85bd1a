package reservations

import (
	"context"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований для чтения владельцем
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_availability

import (
	"context"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// LedgerRepository интерфейс хранилища слотов и бронирований (только чтение)
type LedgerRepository interface {
	ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error)
	ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

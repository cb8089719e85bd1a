package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// LedgerRepository интерфейс хранилища слотов и бронирований.
// Create обязан отклонять повторный (date, time) ошибкой с типом domain.KindSlotTaken.
type LedgerRepository interface {
	ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error)
	ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateNote(ctx context.Context, reservationID int64, text string) error
	CreateReminder(ctx context.Context, reservationID int64, remindAt time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

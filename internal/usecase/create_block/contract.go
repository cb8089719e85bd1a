package create_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// LedgerRepository интерфейс хранилища бронирований для блокировки слотов.
// Create обязан отклонять повторный (date, time) ошибкой с типом domain.KindSlotTaken.
type LedgerRepository interface {
	ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// SlotRepository интерфейс репозитория объявленных слотов
type SlotRepository interface {
	PublishSlots(ctx context.Context, slots []domain.AvailabilitySlot) error
	ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

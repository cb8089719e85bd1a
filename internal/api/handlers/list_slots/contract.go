package list_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

type ScheduleService interface {
	List(ctx context.Context, req *models.ListRequest) (models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package publish_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

type ScheduleService interface {
	Publish(ctx context.Context, req *models.PublishRequest) (*models.PublishResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

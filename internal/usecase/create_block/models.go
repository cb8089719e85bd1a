package create_block

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// Request модель запроса на блокировку слота владельцем
type Request struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID        int64
	Date      time.Time
	Time      types.TimeString
	Status    domain.ReservationStatus
	CreatedAt time.Time
}

package ledger

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolation = "23505"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("ledger.repository: %w", domain.ErrReservationNotFound)

	// ErrSlotTaken возвращается, когда на (date, time) уже есть бронирование или блокировка.
	// Имеет тип domain.KindSlotTaken.
	ErrSlotTaken = domain.NewError(domain.KindSlotTaken, "ledger.repository: slot already reserved")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ledger.repository: failed to scan row")
)

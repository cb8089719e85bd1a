package schedule

import "github.com/m04kA/SMC-SlotLedger/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных датах или времени
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "Invalid schedule data.")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindStoreUnavailable, "service: internal error")
)

// maxPublishDays ограничение на количество дней в одном запросе публикации
const maxPublishDays = 366

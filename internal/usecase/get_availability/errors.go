package get_availability

import "github.com/m04kA/SMC-SlotLedger/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "get_availability: invalid input data")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = domain.NewError(domain.KindInvalidInput, "get_availability: unknown service")

	// ErrStoreUnavailable возвращается, если не удалось прочитать слоты или бронирования
	ErrStoreUnavailable = domain.NewError(domain.KindStoreUnavailable, "get_availability: ledger store unavailable")
)

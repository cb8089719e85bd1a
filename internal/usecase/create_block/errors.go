package create_block

import "github.com/m04kA/SMC-SlotLedger/internal/domain"

var (
	// ErrInvalidInput возвращается при отсутствующей или некорректной дате/времени
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "Date and time are required.")

	// ErrSlotTaken возвращается, когда слот уже забронирован или заблокирован
	ErrSlotTaken = domain.NewError(domain.KindSlotTaken, "This slot is already booked or blocked.")

	// ErrStoreUnavailable возвращается при ошибках чтения или записи хранилища
	ErrStoreUnavailable = domain.NewError(domain.KindStoreUnavailable, "Error blocking slot")
)

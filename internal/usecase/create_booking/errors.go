package create_booking

import "github.com/m04kA/SMC-SlotLedger/internal/domain"

var (
	// ErrInvalidInput возвращается при отсутствующей или некорректной дате/времени
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "Invalid booking data.")

	// ErrSlotNotOffered возвращается, когда слот не объявлен в расписании
	ErrSlotNotOffered = domain.NewError(domain.KindSlotNotOffered, "This time slot is not available.")

	// ErrSlotTaken возвращается, когда слот уже забронирован или заблокирован
	ErrSlotTaken = domain.NewError(domain.KindSlotTaken, "This time slot has already been booked.")

	// ErrStoreUnavailable возвращается при ошибках чтения или записи хранилища
	ErrStoreUnavailable = domain.NewError(domain.KindStoreUnavailable, "Error processing booking")

	// ErrPartialWriteDegraded возвращается вместе с ответом, когда бронирование
	// сохранено, но заметку или напоминание записать не удалось
	ErrPartialWriteDegraded = domain.NewError(domain.KindPartialWriteDegraded, "Booking saved, but some details were not recorded.")
)

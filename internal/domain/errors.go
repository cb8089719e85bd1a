package domain

import "errors"

// ErrorKind стабильный тип отказа, по которому вызывающая сторона принимает решение
type ErrorKind string

const (
	KindInvalidInput         ErrorKind = "invalid_input"
	KindSlotNotOffered       ErrorKind = "slot_not_offered"
	KindSlotTaken            ErrorKind = "slot_taken"
	KindStoreUnavailable     ErrorKind = "store_unavailable"
	KindPartialWriteDegraded ErrorKind = "partial_write_degraded"
)

// Error ошибка с типом отказа.
// errors.Is сравнивает по типу; если у цели задано сообщение, оно тоже должно совпасть.
type Error struct {
	Kind    ErrorKind
	Message string
}

// NewError создает ошибку заданного типа
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Базовые ошибки для сопоставления по типу через errors.Is
var (
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrSlotNotOffered       = &Error{Kind: KindSlotNotOffered}
	ErrSlotTaken            = &Error{Kind: KindSlotTaken}
	ErrStoreUnavailable     = &Error{Kind: KindStoreUnavailable}
	ErrPartialWriteDegraded = &Error{Kind: KindPartialWriteDegraded}
)

// KindOf извлекает тип отказа из цепочки ошибок.
// Для ошибок без типа возвращает пустую строку.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ErrReservationNotFound общий признак отсутствия бронирования во всех хранилищах
var ErrReservationNotFound = errors.New("reservation not found")

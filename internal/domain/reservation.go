package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusBooked  ReservationStatus = "booked"
	StatusBlocked ReservationStatus = "blocked"
)

// Contact контактные данные клиента
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Meeting формат встречи (Physical / Online) и место проведения
type Meeting struct {
	Type     string
	Address  string
	District string
	Country  string
}

// Reservation занятый слот. Создаётся один раз и больше не изменяется.
type Reservation struct {
	ID     int64
	Date   time.Time
	Time   types.TimeString
	Status ReservationStatus

	// Данные бронирования, для блокировки пустые
	Service         string
	DurationMinutes int
	User            *Contact
	Meeting         *Meeting

	// Заполняются только при чтении по ID
	Note     *string
	RemindAt *time.Time

	CreatedAt time.Time
}

// Key ключ занятости слота
func (r *Reservation) Key() string {
	return SlotKey(r.Date, r.Time)
}

// IsBlock returns true if the slot was withheld by the owner
func (r *Reservation) IsBlock() bool {
	return r.Status == StatusBlocked
}

// Valid returns true for known statuses
func (s ReservationStatus) Valid() bool {
	return s == StatusBooked || s == StatusBlocked
}

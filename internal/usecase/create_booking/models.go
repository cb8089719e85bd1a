package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// Request модель запроса на создание бронирования.
// Кроме Date и Time поля не проверяются и сохраняются как есть.
type Request struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM

	Service         string
	DurationMinutes int
	User            *domain.Contact
	Meeting         *domain.Meeting
	Note            string
	Reminder        bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID     int64
	Date   time.Time
	Time   types.TimeString
	Status domain.ReservationStatus

	Service         string
	DurationMinutes int
	User            *domain.Contact
	Meeting         *domain.Meeting
	Note            *string
	RemindAt        *time.Time

	CreatedAt time.Time

	// Warnings непусто, если заметка или напоминание не сохранены
	Warnings []string
}

// Options параметры use case
type Options struct {
	Location     *time.Location // часовой пояс владельца для расчёта напоминания
	ReminderLead time.Duration  // за сколько до встречи напоминать
}

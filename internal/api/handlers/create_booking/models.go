package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_booking"
)

// SlotRef дата и время слота
type SlotRef struct {
	Date string `json:"date"` // "2024-06-10"
	Time string `json:"time"` // "09:00"
}

// ContactDTO контакт клиента
type ContactDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// MeetingDTO формат и место встречи
type MeetingDTO struct {
	Type     string `json:"type"` // Physical | Online
	Address  string `json:"address,omitempty"`
	District string `json:"district,omitempty"`
	Country  string `json:"country,omitempty"`
}

// CreateBookingRequest HTTP request model.
// Слот передается во вложенном объекте booking или плоскими полями date/time.
type CreateBookingRequest struct {
	Booking *SlotRef `json:"booking,omitempty"`
	Date    string   `json:"date,omitempty"`
	Time    string   `json:"time,omitempty"`

	Service         string      `json:"service,omitempty"`
	DurationMinutes int         `json:"durationMinutes,omitempty"`
	User            *ContactDTO `json:"user,omitempty"`
	Meeting         *MeetingDTO `json:"meeting,omitempty"`
	Note            string      `json:"note,omitempty"`
	Reminder        bool        `json:"reminder,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64       `json:"id"`
	Status          string      `json:"status"`
	Booking         SlotRef     `json:"booking"`
	Service         string      `json:"service,omitempty"`
	DurationMinutes int         `json:"durationMinutes,omitempty"`
	User            *ContactDTO `json:"user,omitempty"`
	Meeting         *MeetingDTO `json:"meeting,omitempty"`
	Note            *string     `json:"note,omitempty"`
	RemindAt        *string     `json:"remindAt,omitempty"`
	CreatedAt       string      `json:"createdAt"`
}

// CreateBookingResponse тело ответа 201
type CreateBookingResponse struct {
	Message  string           `json:"message"`
	Booking  *BookingResponse `json:"booking"`
	Degraded bool             `json:"degraded,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Вложенный booking важнее плоских полей.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	slot := SlotRef{Date: r.Date, Time: r.Time}
	if r.Booking != nil {
		slot = *r.Booking
	}

	req := &createBooking.Request{
		Date:            slot.Date,
		Time:            slot.Time,
		Service:         r.Service,
		DurationMinutes: r.DurationMinutes,
		Note:            r.Note,
		Reminder:        r.Reminder,
	}
	if r.User != nil {
		req.User = &domain.Contact{Name: r.User.Name, Phone: r.User.Phone, Email: r.User.Email}
	}
	if r.Meeting != nil {
		req.Meeting = &domain.Meeting{
			Type:     r.Meeting.Type,
			Address:  r.Meeting.Address,
			District: r.Meeting.District,
			Country:  r.Meeting.Country,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:     resp.ID,
		Status: string(resp.Status),
		Booking: SlotRef{
			Date: resp.Date.Format(domain.DateFormat),
			Time: resp.Time.String(),
		},
		Service:         resp.Service,
		DurationMinutes: resp.DurationMinutes,
		Note:            resp.Note,
		CreatedAt:       resp.CreatedAt.UTC().Format(time.RFC3339),
	}
	if resp.User != nil {
		out.User = &ContactDTO{Name: resp.User.Name, Phone: resp.User.Phone, Email: resp.User.Email}
	}
	if resp.Meeting != nil {
		out.Meeting = &MeetingDTO{
			Type:     resp.Meeting.Type,
			Address:  resp.Meeting.Address,
			District: resp.Meeting.District,
			Country:  resp.Meeting.Country,
		}
	}
	if resp.RemindAt != nil {
		s := resp.RemindAt.UTC().Format(time.RFC3339)
		out.RemindAt = &s
	}
	return out
}

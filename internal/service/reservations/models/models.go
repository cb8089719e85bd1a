package models

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// Request модели

// ListRequest запрос на получение бронирований за период
type ListRequest struct {
	From   string  `json:"from,omitempty"`   // "2024-06-10", пусто - без ограничения
	To     string  `json:"to,omitempty"`     // "2024-06-30"
	Status *string `json:"status,omitempty"` // booked | blocked
}

// Response модели

// ContactResponse контакт клиента
type ContactResponse struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// MeetingResponse формат встречи
type MeetingResponse struct {
	Type     string `json:"type,omitempty"`
	Address  string `json:"address,omitempty"`
	District string `json:"district,omitempty"`
	Country  string `json:"country,omitempty"`
}

// ReservationResponse ответ с данными бронирования или блокировки
type ReservationResponse struct {
	ID              int64            `json:"id"`
	Date            string           `json:"date"` // "2024-06-10"
	Time            string           `json:"time"` // "09:00"
	Status          string           `json:"status"`
	Service         string           `json:"service,omitempty"`
	DurationMinutes int              `json:"durationMinutes,omitempty"`
	User            *ContactResponse `json:"user,omitempty"`
	Meeting         *MeetingResponse `json:"meeting,omitempty"`
	Note            *string          `json:"note,omitempty"`
	RemindAt        *string          `json:"remindAt,omitempty"`
	CreatedAt       string           `json:"createdAt,omitempty"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// Конвертеры

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              r.ID,
		Date:            r.Date.Format(domain.DateFormat),
		Time:            r.Time.String(),
		Status:          string(r.Status),
		Service:         r.Service,
		DurationMinutes: r.DurationMinutes,
		Note:            r.Note,
	}

	if r.User != nil {
		resp.User = &ContactResponse{Name: r.User.Name, Phone: r.User.Phone, Email: r.User.Email}
	}
	if r.Meeting != nil {
		resp.Meeting = &MeetingResponse{
			Type:     r.Meeting.Type,
			Address:  r.Meeting.Address,
			District: r.Meeting.District,
			Country:  r.Meeting.Country,
		}
	}
	if r.RemindAt != nil {
		s := r.RemindAt.UTC().Format(time.RFC3339)
		resp.RemindAt = &s
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}

	return resp
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

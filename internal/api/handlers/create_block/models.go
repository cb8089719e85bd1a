package create_block

import (
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	createBlock "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_block"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date string `json:"date"` // "2024-06-10"
	Time string `json:"time"` // "09:00"
}

// CreateBlockResponse HTTP response model
type CreateBlockResponse struct {
	Message   string `json:"message"`
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest() *createBlock.Request {
	return &createBlock.Request{Date: r.Date, Time: r.Time}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response, message string) *CreateBlockResponse {
	return &CreateBlockResponse{
		Message:   message,
		ID:        resp.ID,
		Status:    string(resp.Status),
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		CreatedAt: resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}

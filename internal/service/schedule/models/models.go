package models

// Request модели

// PublishRequest запрос на публикацию слотов на каждую дату из [From, To].
// Если Times пуст, время генерируется с шагом StepMinutes внутри рабочего окна.
type PublishRequest struct {
	From        string   `json:"from"`            // "2024-06-10"
	To          string   `json:"to,omitempty"`    // пусто - одна дата From
	Times       []string `json:"times,omitempty"` // ["09:00", "10:00"]
	StepMinutes int      `json:"stepMinutes,omitempty"`
}

// ListRequest запрос на получение объявленных слотов
type ListRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Response модели

// PublishResponse результат публикации
type PublishResponse struct {
	Dates     []string `json:"dates"`
	Times     []string `json:"times"`
	Published int      `json:"published"` // количество пар (date, time) в запросе, включая уже существующие
}

// SlotsResponse объявленные слоты по датам
type SlotsResponse map[string][]string

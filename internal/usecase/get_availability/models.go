package get_availability

import (
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// Request модель запроса свободных слотов.
// Все поля необязательные. Если не задано ни одно из Service, DurationMinutes,
// Earliest, Latest, фильтр по рабочему окну не применяется.
type Request struct {
	From            string // YYYY-MM-DD, начало диапазона
	To              string // YYYY-MM-DD, конец диапазона
	Service         string // имя услуги из каталога, задаёт длительность
	DurationMinutes *int   // явная длительность, важнее длительности услуги
	Earliest        string // HH:MM, переопределяет начало рабочего окна
	Latest          string // HH:MM, переопределяет конец рабочего окна
}

// Response свободные слоты: дата -> время по возрастанию.
// Даты без свободных слотов отсутствуют.
type Response struct {
	Slots  domain.OpenSlotSet
	Window *domain.ServiceWindow // применённое окно, nil если фильтра не было
}

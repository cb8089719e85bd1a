package fileledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/m04kA/SMC-SlotLedger/pkg/errs"
)

const (
	availabilityFile = "availability.json"
	bookingsFile     = "bookings.json"
	notesFile        = "notes.json"
	remindersFile    = "reminders.json"
)

// availabilityDoc формат availability.json: {"slots": {"2024-06-10": ["09:00", "10:00"]}}
type availabilityDoc struct {
	Slots map[string][]string `json:"slots"`
}

// bookingEntry элемент bookings.json.
// Записи без status считаются бронированиями, записи без id получают его при чтении.
// Слот читается из booking.{date,time}, а у плоских записей из date/time верхнего уровня.
type bookingEntry struct {
	ID              int64         `json:"id,omitempty"`
	Service         string        `json:"service,omitempty"`
	DurationMinutes int           `json:"durationMinutes,omitempty"`
	User            *userEntry    `json:"user,omitempty"`
	Meeting         *meetingEntry `json:"meeting,omitempty"`
	Booking         slotEntry     `json:"booking"`
	Date            string        `json:"date,omitempty"`
	Time            string        `json:"time,omitempty"`
	Status          string        `json:"status,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
}

// slot дата и время записи в любом из двух форматов
func (e bookingEntry) slot() slotEntry {
	if e.Booking.Date != "" || e.Booking.Time != "" {
		return e.Booking
	}
	return slotEntry{Date: e.Date, Time: e.Time}
}

type slotEntry struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type userEntry struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type meetingEntry struct {
	Type     string `json:"type"`
	Address  string `json:"address,omitempty"`
	District string `json:"district,omitempty"`
	Country  string `json:"country,omitempty"`
}

type noteEntry struct {
	ReservationID int64     `json:"reservationId"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}

type reminderEntry struct {
	ReservationID int64     `json:"reservationId"`
	RemindAt      time.Time `json:"remindAt"`
}

// readJSON читает файл в v. Отсутствующий или пустой файл оставляет v без изменений.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errs.Wrapf(err, "fileledger: read %s", filepath.Base(path))
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.Wrapf(err, "fileledger: decode %s", filepath.Base(path))
	}
	return nil
}

// writeJSON записывает v через временный файл и rename, чтобы читатели не видели частичной записи
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Wrapf(err, "fileledger: encode %s", filepath.Base(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errs.Wrapf(err, "fileledger: create temp for %s", filepath.Base(path))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errs.Wrapf(err, "fileledger: write %s", filepath.Base(path))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errs.Wrapf(err, "fileledger: sync %s", filepath.Base(path))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrapf(err, "fileledger: close %s", filepath.Base(path))
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrapf(err, "fileledger: replace %s", filepath.Base(path))
	}
	return nil
}

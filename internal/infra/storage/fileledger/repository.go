package fileledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/errs"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

var (
	// ErrSlotTaken возвращается, когда на (date, time) уже есть бронирование или блокировка.
	// Имеет тип domain.KindSlotTaken.
	ErrSlotTaken = domain.NewError(domain.KindSlotTaken, "fileledger: slot already reserved")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("fileledger: %w", domain.ErrReservationNotFound)
)

// Repository хранилище в JSON-файлах каталога dir.
// Проверка и вставка выполняются под одним мьютексом, поэтому каталог
// должен принадлежать одному процессу.
type Repository struct {
	dir string
	mu  sync.RWMutex
}

// NewRepository создает репозиторий и каталог данных
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "fileledger: create data dir %s", dir)
	}
	return &Repository{dir: dir}, nil
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name)
}

// Ping проверяет, что каталог данных доступен
func (r *Repository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(r.dir)
	return errs.Wrap(err, "fileledger: stat data dir")
}

// PublishSlots добавляет слоты в availability.json
func (r *Repository) PublishSlots(ctx context.Context, slots []domain.AvailabilitySlot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := availabilityDoc{Slots: map[string][]string{}}
	if err := readJSON(r.path(availabilityFile), &doc); err != nil {
		return err
	}
	if doc.Slots == nil {
		doc.Slots = map[string][]string{}
	}

	for _, s := range slots {
		date := s.Date.Format(domain.DateFormat)
		if !contains(doc.Slots[date], string(s.Time)) {
			doc.Slots[date] = append(doc.Slots[date], string(s.Time))
		}
	}
	for date := range doc.Slots {
		sort.Strings(doc.Slots[date])
	}

	return writeJSON(r.path(availabilityFile), doc)
}

// ListSlots возвращает слоты доступности в диапазоне дат
func (r *Repository) ListSlots(ctx context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var doc availabilityDoc
	if err := readJSON(r.path(availabilityFile), &doc); err != nil {
		return nil, err
	}

	var slots []domain.AvailabilitySlot
	for d, times := range doc.Slots {
		date, err := domain.ParseDate(d)
		if err != nil {
			return nil, errs.Wrapf(err, "fileledger: %s", availabilityFile)
		}
		if !dates.Contains(date) {
			continue
		}
		for _, t := range times {
			slots = append(slots, domain.AvailabilitySlot{Date: date, Time: types.TimeString(t)})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Key() < slots[j].Key() })
	return slots, nil
}

// ListReservations возвращает бронирования и блокировки в диапазоне дат
func (r *Repository) ListReservations(ctx context.Context, dates domain.DateRange) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.readBookings()
	if err != nil {
		return nil, err
	}

	var reservations []*domain.Reservation
	for _, e := range entries {
		res, err := e.toDomain()
		if err != nil {
			return nil, err
		}
		if dates.Contains(res.Date) {
			reservations = append(reservations, res)
		}
	}

	sort.SliceStable(reservations, func(i, j int) bool { return reservations[i].Key() < reservations[j].Key() })
	return reservations, nil
}

// ReservationExists проверяет, занят ли слот
func (r *Repository) ReservationExists(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.readBookings()
	if err != nil {
		return false, err
	}
	return findSlot(entries, date.Format(domain.DateFormat), string(t)) >= 0, nil
}

// Create проверяет занятость и дописывает запись в bookings.json под одной блокировкой
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readBookings()
	if err != nil {
		return nil, err
	}

	date := res.Date.Format(domain.DateFormat)
	if findSlot(entries, date, string(res.Time)) >= 0 {
		return nil, errs.Wrapf(ErrSlotTaken, "key %s", res.Key())
	}

	created := *res
	created.ID = nextID(entries)
	created.CreatedAt = time.Now().UTC()

	entries = append(entries, fromDomain(&created))
	if err := writeJSON(r.path(bookingsFile), entries); err != nil {
		return nil, err
	}

	return &created, nil
}

// CreateNote дописывает заметку в notes.json
func (r *Repository) CreateNote(ctx context.Context, reservationID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var notes []noteEntry
	if err := readJSON(r.path(notesFile), &notes); err != nil {
		return err
	}
	notes = append(notes, noteEntry{ReservationID: reservationID, Note: text, CreatedAt: time.Now().UTC()})
	return writeJSON(r.path(notesFile), notes)
}

// CreateReminder дописывает напоминание в reminders.json
func (r *Repository) CreateReminder(ctx context.Context, reservationID int64, remindAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var reminders []reminderEntry
	if err := readJSON(r.path(remindersFile), &reminders); err != nil {
		return err
	}
	reminders = append(reminders, reminderEntry{ReservationID: reservationID, RemindAt: remindAt.UTC()})
	return writeJSON(r.path(remindersFile), reminders)
}

// GetByID получает бронирование вместе с заметкой и напоминанием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.readBookings()
	if err != nil {
		return nil, err
	}

	var res *domain.Reservation
	for _, e := range entries {
		if e.ID == id {
			if res, err = e.toDomain(); err != nil {
				return nil, err
			}
			break
		}
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}

	var notes []noteEntry
	if err := readJSON(r.path(notesFile), &notes); err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ReservationID == id {
			res.Note = &notes[i].Note
		}
	}

	var reminders []reminderEntry
	if err := readJSON(r.path(remindersFile), &reminders); err != nil {
		return nil, err
	}
	for i := range reminders {
		if reminders[i].ReservationID == id {
			res.RemindAt = &reminders[i].RemindAt
		}
	}

	return res, nil
}

// readBookings читает bookings.json и проставляет id записям, у которых его нет.
// Повреждённый файл возвращает ошибку: считать все слоты свободными нельзя.
func (r *Repository) readBookings() ([]bookingEntry, error) {
	var entries []bookingEntry
	if err := readJSON(r.path(bookingsFile), &entries); err != nil {
		return nil, err
	}

	maxID := int64(0)
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	for i := range entries {
		if entries[i].ID == 0 {
			maxID++
			entries[i].ID = maxID
		}
	}

	return entries, nil
}

func findSlot(entries []bookingEntry, date, t string) int {
	for i, e := range entries {
		if s := e.slot(); s.Date == date && s.Time == t {
			return i
		}
	}
	return -1
}

func nextID(entries []bookingEntry) int64 {
	maxID := int64(0)
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (e bookingEntry) toDomain() (*domain.Reservation, error) {
	slot := e.slot()
	date, err := domain.ParseDate(slot.Date)
	if err != nil {
		return nil, errs.Wrapf(err, "fileledger: %s entry %d", bookingsFile, e.ID)
	}

	res := &domain.Reservation{
		ID:              e.ID,
		Date:            date,
		Time:            types.TimeString(slot.Time),
		Status:          domain.ReservationStatus(e.Status),
		Service:         e.Service,
		DurationMinutes: e.DurationMinutes,
	}
	if res.Status == "" {
		res.Status = domain.StatusBooked
	}
	if e.User != nil {
		res.User = &domain.Contact{Name: e.User.Name, Phone: e.User.Phone, Email: e.User.Email}
	}
	if e.Meeting != nil {
		res.Meeting = &domain.Meeting{
			Type:     e.Meeting.Type,
			Address:  e.Meeting.Address,
			District: e.Meeting.District,
			Country:  e.Meeting.Country,
		}
	}
	if e.CreatedAt != nil {
		res.CreatedAt = *e.CreatedAt
	}
	return res, nil
}

func fromDomain(res *domain.Reservation) bookingEntry {
	createdAt := res.CreatedAt
	e := bookingEntry{
		ID:              res.ID,
		Service:         res.Service,
		DurationMinutes: res.DurationMinutes,
		Booking:         slotEntry{Date: res.Date.Format(domain.DateFormat), Time: string(res.Time)},
		Status:          string(res.Status),
		CreatedAt:       &createdAt,
	}
	if res.User != nil {
		e.User = &userEntry{Name: res.User.Name, Phone: res.User.Phone, Email: res.User.Email}
	}
	if res.Meeting != nil {
		e.Meeting = &meetingEntry{
			Type:     res.Meeting.Type,
			Address:  res.Meeting.Address,
			District: res.Meeting.District,
			Country:  res.Meeting.Country,
		}
	}
	return e
}

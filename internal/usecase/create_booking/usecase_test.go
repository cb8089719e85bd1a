package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

var errSlotTakenInStore = domain.NewError(domain.KindSlotTaken, "fake: slot already reserved")

// fakeLedger хранилище в памяти с уникальностью по ключу слота.
// staleExists заставляет ReservationExists всегда отвечать false,
// как при гонке между проверкой и вставкой.
type fakeLedger struct {
	mu           sync.Mutex
	slots        []domain.AvailabilitySlot
	reservations map[string]*domain.Reservation
	notes        map[int64]string
	reminders    map[int64]time.Time
	nextID       int64
	calls        int

	staleExists bool
	slotsErr    error
	existsErr   error
	createErr   error
	noteErr     error
	reminderErr error
}

func newFakeLedger(slots ...domain.AvailabilitySlot) *fakeLedger {
	return &fakeLedger{
		slots:        slots,
		reservations: map[string]*domain.Reservation{},
		notes:        map[int64]string{},
		reminders:    map[int64]time.Time{},
	}
}

func (f *fakeLedger) ListSlots(_ context.Context, dates domain.DateRange) ([]domain.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	var out []domain.AvailabilitySlot
	for _, s := range f.slots {
		if dates.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLedger) ReservationExists(_ context.Context, date time.Time, t types.TimeString) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if f.staleExists {
		return false, nil
	}
	_, ok := f.reservations[domain.SlotKey(date, t)]
	return ok, nil
}

func (f *fakeLedger) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.reservations[res.Key()]; ok {
		return nil, errSlotTakenInStore
	}
	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.reservations[res.Key()] = &created
	return &created, nil
}

func (f *fakeLedger) CreateNote(_ context.Context, id int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noteErr != nil {
		return f.noteErr
	}
	f.notes[id] = text
	return nil
}

func (f *fakeLedger) CreateReminder(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reminderErr != nil {
		return f.reminderErr
	}
	f.reminders[id] = at
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slot(date, t string) domain.AvailabilitySlot {
	d, _ := time.Parse(domain.DateFormat, date)
	return domain.AvailabilitySlot{Date: d, Time: types.TimeString(t)}
}

func newUseCase(repo LedgerRepository) *UseCase {
	return NewUseCase(repo, Options{Location: time.FixedZone("EAT", 3*60*60), ReminderLead: 24 * time.Hour}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"), slot("2024-06-10", "10:00"))
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            "2024-06-10",
		Time:            "09:00",
		Service:         "Mentorship",
		DurationMinutes: 60,
		User:            &domain.Contact{Name: "Ann", Phone: "+256700000000"},
		Meeting:         &domain.Meeting{Type: "Physical", District: "Kampala", Country: "Uganda"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusBooked, resp.Status)
	assert.Equal(t, types.TimeString("09:00"), resp.Time)
	assert.Equal(t, "Mentorship", resp.Service)
	assert.Equal(t, "Kampala", resp.Meeting.District)
	assert.Empty(t, resp.Warnings)
	assert.Nil(t, resp.Note)
	assert.Nil(t, resp.RemindAt)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"), slot("2024-06-10", "10:00"))
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{Date: "2024-06-10", Time: "09:00"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{Date: "2024-06-10", Time: "09:00"})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, domain.KindSlotTaken, domain.KindOf(err))
}

func TestExecute_SlotNotOffered(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"))
	uc := newUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{Date: "2024-06-11", Time: "09:00"})
	assert.ErrorIs(t, err, ErrSlotNotOffered)
	assert.Equal(t, domain.KindSlotNotOffered, domain.KindOf(err))
	assert.Empty(t, repo.reservations)
}

func TestExecute_NotOfferedEvenIfBlocked(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"))
	_, err := repo.Create(context.Background(), &domain.Reservation{Date: slot("2024-06-10", "11:00").Date, Time: "11:00", Status: domain.StatusBlocked})
	require.NoError(t, err)

	_, err = newUseCase(repo).Execute(context.Background(), &Request{Date: "2024-06-10", Time: "11:00"})
	assert.ErrorIs(t, err, ErrSlotNotOffered)
}

func TestExecute_InvalidInputBeforeStore(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing date", req: Request{Time: "09:00"}},
		{name: "missing time", req: Request{Date: "2024-06-10"}},
		{name: "bad date", req: Request{Date: "10-06-2024", Time: "09:00"}},
		{name: "bad time", req: Request{Date: "2024-06-10", Time: "9am"}},
		{name: "out of range time", req: Request{Date: "2024-06-10", Time: "24:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedger(slot("2024-06-10", "09:00"))

			_, err := newUseCase(repo).Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
			assert.Zero(t, repo.calls)
		})
	}
}

func TestExecute_ConcurrentSameSlotOneWinner(t *testing.T) {
	for _, stale := range []bool{false, true} {
		repo := newFakeLedger(slot("2024-06-10", "09:00"))
		repo.staleExists = stale
		uc := newUseCase(repo)

		const n = 32
		errs := make([]error, n)
		var wg sync.WaitGroup
		start := make(chan struct{})

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = uc.Execute(context.Background(), &Request{Date: "2024-06-10", Time: "09:00"})
			}(i)
		}
		close(start)
		wg.Wait()

		wins, taken := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrSlotTaken):
				taken++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, wins, "stale=%v", stale)
		assert.Equal(t, n-1, taken, "stale=%v", stale)
		assert.Len(t, repo.reservations, 1)
	}
}

func TestExecute_DifferentSlotsIndependent(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"), slot("2024-06-10", "10:00"), slot("2024-06-11", "09:00"))
	uc := newUseCase(repo)

	var wg sync.WaitGroup
	for _, r := range []Request{
		{Date: "2024-06-10", Time: "09:00"},
		{Date: "2024-06-10", Time: "10:00"},
		{Date: "2024-06-11", Time: "09:00"},
	} {
		wg.Add(1)
		go func(r Request) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &r)
			assert.NoError(t, err)
		}(r)
	}
	wg.Wait()

	assert.Len(t, repo.reservations, 3)
}

func TestExecute_NoteAndReminder(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"))

	resp, err := newUseCase(repo).Execute(context.Background(), &Request{
		Date:     "2024-06-10",
		Time:     "09:00",
		Note:     "  bring slides  ",
		Reminder: true,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "  bring slides  ", *resp.Note)
	assert.Equal(t, "  bring slides  ", repo.notes[resp.ID])

	// 09:00 EAT = 06:00 UTC, минус 24 часа
	want := time.Date(2024, 6, 9, 6, 0, 0, 0, time.UTC)
	require.NotNil(t, resp.RemindAt)
	assert.True(t, want.Equal(*resp.RemindAt), "got %s", resp.RemindAt)
	assert.True(t, want.Equal(repo.reminders[resp.ID]))
}

func TestExecute_PayloadFieldsCarriedUntouched(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"))
	note := strings.Repeat("x", 5000)
	service := " " + strings.Repeat("Coaching ", 40)

	resp, err := newUseCase(repo).Execute(context.Background(), &Request{
		Date:    "2024-06-10",
		Time:    "09:00",
		Service: service,
		Note:    note,
	})

	require.NoError(t, err)
	assert.Equal(t, service, resp.Service)
	assert.Equal(t, service, repo.reservations["2024-06-10T09:00"].Service)
	require.NotNil(t, resp.Note)
	assert.Equal(t, note, *resp.Note)
	assert.Equal(t, note, repo.notes[resp.ID])
}

func TestExecute_PartialWriteDegraded(t *testing.T) {
	repo := newFakeLedger(slot("2024-06-10", "09:00"))
	repo.noteErr = errors.New("notes table locked")
	repo.reminderErr = errors.New("reminders table locked")

	resp, err := newUseCase(repo).Execute(context.Background(), &Request{
		Date:     "2024-06-10",
		Time:     "09:00",
		Note:     "bring slides",
		Reminder: true,
	})

	assert.ErrorIs(t, err, ErrPartialWriteDegraded)
	assert.Equal(t, domain.KindPartialWriteDegraded, domain.KindOf(err))
	require.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, []string{"note was not saved", "reminder was not saved"}, resp.Warnings)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(f *fakeLedger)
	}{
		{name: "slots read", setup: func(f *fakeLedger) { f.slotsErr = storeErr }},
		{name: "exists check", setup: func(f *fakeLedger) { f.existsErr = context.DeadlineExceeded }},
		{name: "insert", setup: func(f *fakeLedger) { f.createErr = storeErr }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedger(slot("2024-06-10", "09:00"))
			tt.setup(repo)

			resp, err := newUseCase(repo).Execute(context.Background(), &Request{Date: "2024-06-10", Time: "09:00"})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrStoreUnavailable)
			assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
		})
	}
}

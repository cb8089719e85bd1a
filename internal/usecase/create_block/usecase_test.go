package create_block

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

type fakeLedger struct {
	mu           sync.Mutex
	reservations map[string]*domain.Reservation
	nextID       int64
	calls        int

	staleExists bool
	existsErr   error
	createErr   error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{reservations: map[string]*domain.Reservation{}}
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
		return nil, domain.NewError(domain.KindSlotTaken, "fake: slot already reserved")
	}
	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.reservations[res.Key()] = &created
	return &created, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_BlocksUndeclaredSlot(t *testing.T) {
	repo := newFakeLedger()

	resp, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &Request{Date: "2024-06-12", Time: "14:00"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, resp.Status)
	assert.Equal(t, "2024-06-12", resp.Date.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("14:00"), resp.Time)
	require.Contains(t, repo.reservations, "2024-06-12T14:00")
	assert.True(t, repo.reservations["2024-06-12T14:00"].IsBlock())
}

func TestExecute_AlreadyReserved(t *testing.T) {
	repo := newFakeLedger()
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: "2024-06-12", Time: "14:00"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{Date: "2024-06-12", Time: "14:00"})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, "This slot is already booked or blocked.", err.Error())
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "empty", req: Request{}},
		{name: "missing time", req: Request{Date: "2024-06-12"}},
		{name: "bad date", req: Request{Date: "2024-13-01", Time: "14:00"}},
		{name: "bad time", req: Request{Date: "2024-06-12", Time: "14:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedger()

			_, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
			assert.Zero(t, repo.calls)
		})
	}
}

func TestExecute_ConcurrentBlocksOneWinner(t *testing.T) {
	repo := newFakeLedger()
	repo.staleExists = true
	uc := NewUseCase(repo, nopLogger{})

	const n = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		taken int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{Date: "2024-06-12", Time: "14:00"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, taken)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	repo := newFakeLedger()
	repo.createErr = errors.New("disk full")

	_, err := NewUseCase(repo, nopLogger{}).Execute(context.Background(), &Request{Date: "2024-06-12", Time: "14:00"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
}

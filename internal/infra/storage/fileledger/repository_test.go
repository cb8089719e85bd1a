package fileledger

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func TestReadsLegacyFiles(t *testing.T) {
	repo, dir := newRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, availabilityFile),
		[]byte(`{"slots":{"2024-06-10":["09:00","10:00"],"2024-06-11":["09:00"]}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, bookingsFile), []byte(`[
  {"service":"Mentorship","user":{"name":"Ann","phone":"+256700000000"},"booking":{"date":"2024-06-10","time":"09:00"}},
  {"booking":{"date":"2024-06-11","time":"09:00"},"status":"blocked"},
  {"date":"2024-06-11","time":"10:00"}
]`), 0o644))

	slots, err := repo.ListSlots(context.Background(), domain.AllDates())
	require.NoError(t, err)
	assert.Len(t, slots, 3)

	list, err := repo.ListReservations(context.Background(), domain.AllDates())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, domain.StatusBooked, list[0].Status)
	assert.Equal(t, "Ann", list[0].User.Name)
	assert.Equal(t, int64(2), list[1].ID)
	assert.True(t, list[1].IsBlock())
	assert.Equal(t, int64(3), list[2].ID)
	assert.Equal(t, "10:00", list[2].Time.String())
	assert.Equal(t, domain.StatusBooked, list[2].Status)

	exists, err := repo.ReservationExists(context.Background(), day("2024-06-11"), "10:00")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(context.Background(), &domain.Reservation{Date: day("2024-06-11"), Time: "10:00", Status: domain.StatusBooked})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	created, err := repo.Create(context.Background(), &domain.Reservation{Date: day("2024-06-10"), Time: "10:00", Status: domain.StatusBooked})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
}

func TestEntryWithoutSlotFailsClosed(t *testing.T) {
	repo, dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, bookingsFile), []byte(`[{"service":"Mentorship"}]`), 0o644))

	_, err := repo.ListReservations(context.Background(), domain.AllDates())
	assert.Error(t, err)
}

func TestCorruptBookingsFailsClosed(t *testing.T) {
	repo, dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, bookingsFile), []byte(`[{"booking":`), 0o644))

	_, err := repo.ListReservations(context.Background(), domain.AllDates())
	assert.Error(t, err)

	_, err = repo.ReservationExists(context.Background(), day("2024-06-10"), "09:00")
	assert.Error(t, err)
}

func TestPublishSlots_Idempotent(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	slots := []domain.AvailabilitySlot{
		{Date: day("2024-06-10"), Time: "10:00"},
		{Date: day("2024-06-10"), Time: "09:00"},
	}
	require.NoError(t, repo.PublishSlots(ctx, slots))
	require.NoError(t, repo.PublishSlots(ctx, slots))

	got, err := repo.ListSlots(ctx, domain.SingleDate(day("2024-06-10")))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-10T09:00", got[0].Key())
}

func TestCreate_DuplicateIsSlotTaken(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Reservation{Date: day("2024-06-10"), Time: "09:00", Status: domain.StatusBlocked})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Reservation{Date: day("2024-06-10"), Time: "09:00", Status: domain.StatusBooked})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	const n = 16
	results := make(chan error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Reservation{Date: day("2024-06-10"), Time: "09:00", Status: domain.StatusBooked})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotTaken)
	}
	assert.Equal(t, 1, wins)

	list, err := repo.ListReservations(ctx, domain.AllDates())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetByID_WithNoteAndReminder(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Reservation{
		Date:    day("2024-06-10"),
		Time:    "09:00",
		Status:  domain.StatusBooked,
		Meeting: &domain.Meeting{Type: "Physical", District: "Kampala"},
	})
	require.NoError(t, err)

	remindAt := time.Date(2024, 6, 9, 6, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateNote(ctx, created.ID, "bring slides"))
	require.NoError(t, repo.CreateReminder(ctx, created.ID, remindAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kampala", got.Meeting.District)
	require.NotNil(t, got.Note)
	assert.Equal(t, "bring slides", *got.Note)
	require.NotNil(t, got.RemindAt)
	assert.True(t, remindAt.Equal(*got.RemindAt))

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelledContext(t *testing.T) {
	repo, _ := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListSlots(ctx, domain.AllDates())
	assert.ErrorIs(t, err, context.Canceled)
}

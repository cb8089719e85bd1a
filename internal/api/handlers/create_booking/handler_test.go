package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/fileledger"
	createBooking "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()

	repo, err := fileledger.NewRepository(t.TempDir())
	require.NoError(t, err)

	date, _ := time.Parse(domain.DateFormat, "2024-06-10")
	require.NoError(t, repo.PublishSlots(context.Background(), []domain.AvailabilitySlot{
		{Date: date, Time: types.TimeString("09:00")},
		{Date: date, Time: types.TimeString("10:00")},
	}))

	uc := createBooking.NewUseCase(repo, createBooking.Options{ReminderLead: 24 * time.Hour}, nopLogger{})
	return NewHandler(uc, nopLogger{})
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_NestedBody(t *testing.T) {
	h := http.HandlerFunc(newHandler(t).Handle)

	rec := post(h, `{
		"service": "Mentorship",
		"durationMinutes": 60,
		"user": {"name": "Ann", "phone": "+256700000000", "email": "ann@example.com"},
		"meeting": {"type": "Physical", "district": "Kampala", "country": "Uganda"},
		"booking": {"date": "2024-06-10", "time": "09:00"},
		"note": "first session",
		"reminder": true
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Booking successful!", resp.Message)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "booked", resp.Booking.Status)
	assert.Equal(t, SlotRef{Date: "2024-06-10", Time: "09:00"}, resp.Booking.Booking)
	assert.Equal(t, "Ann", resp.Booking.User.Name)
	assert.Equal(t, "Kampala", resp.Booking.Meeting.District)
	require.NotNil(t, resp.Booking.Note)
	assert.Equal(t, "first session", *resp.Booking.Note)
	require.NotNil(t, resp.Booking.RemindAt)
	assert.Equal(t, "2024-06-09T09:00:00Z", *resp.Booking.RemindAt)
	assert.NotZero(t, resp.Booking.ID)
}

func TestHandle_FlatBody(t *testing.T) {
	h := http.HandlerFunc(newHandler(t).Handle)

	rec := post(h, `{"date": "2024-06-10", "time": "10:00", "service": "Consultancy"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHandle_Rejections(t *testing.T) {
	h := http.HandlerFunc(newHandler(t).Handle)
	require.Equal(t, http.StatusCreated, post(h, `{"booking": {"date": "2024-06-10", "time": "09:00"}}`).Code)

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
		msg    string
	}{
		{
			name: "malformed json", body: `{"booking":`,
			status: http.StatusBadRequest, kind: "invalid_input", msg: "Invalid booking data.",
		},
		{
			name: "missing slot", body: `{"service": "Mentorship"}`,
			status: http.StatusBadRequest, kind: "invalid_input", msg: "Invalid booking data.",
		},
		{
			name: "not offered", body: `{"booking": {"date": "2024-06-11", "time": "09:00"}}`,
			status: http.StatusBadRequest, kind: "slot_not_offered", msg: "This time slot is not available.",
		},
		{
			name: "taken", body: `{"booking": {"date": "2024-06-10", "time": "09:00"}}`,
			status: http.StatusConflict, kind: "slot_taken", msg: "This time slot has already been booked.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestHandle_ConcurrentRequestsOneCreated(t *testing.T) {
	h := http.HandlerFunc(newHandler(t).Handle)

	const n = 20
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = post(h, `{"booking": {"date": "2024-06-10", "time": "10:00"}}`).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

type stubUseCase struct {
	resp *createBooking.Response
	err  error
}

func (s stubUseCase) Execute(context.Context, *createBooking.Request) (*createBooking.Response, error) {
	return s.resp, s.err
}

func TestHandle_Degraded(t *testing.T) {
	date, _ := time.Parse(domain.DateFormat, "2024-06-10")
	uc := stubUseCase{
		resp: &createBooking.Response{
			ID: 3, Date: date, Time: "09:00", Status: domain.StatusBooked,
			Warnings: []string{"reminder was not saved"},
		},
		err: errors.Join(createBooking.ErrPartialWriteDegraded),
	}

	rec := post(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), `{"booking": {"date": "2024-06-10", "time": "09:00"}, "reminder": true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Equal(t, []string{"reminder was not saved"}, resp.Warnings)
	assert.Equal(t, int64(3), resp.Booking.ID)
}

func TestHandle_StoreUnavailable(t *testing.T) {
	uc := stubUseCase{err: errors.Join(createBooking.ErrStoreUnavailable, errors.New("disk I/O error"))}

	rec := post(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), `{"booking": {"date": "2024-06-10", "time": "09:00"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "store_unavailable", body.Error)
	assert.Equal(t, "Error processing booking", body.Message)
}

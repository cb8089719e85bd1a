package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	getAvailability "github.com/m04kA/SMC-SlotLedger/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

type stubUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{Slots: domain.OpenSlotSet{
		"2024-06-10": {types.TimeString("09:00"), types.TimeString("10:00")},
	}}}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/availability?from=2024-06-10&to=2024-06-12&service=Mentorship&durationMinutes=60")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"2024-06-10":["09:00","10:00"]}`, rec.Body.String())

	assert.Equal(t, "2024-06-10", uc.got.From)
	assert.Equal(t, "2024-06-12", uc.got.To)
	assert.Equal(t, "Mentorship", uc.got.Service)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 60, *uc.got.DurationMinutes)
}

func TestHandle_EmptyIsObject(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{Slots: domain.OpenSlotSet{}}}

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/availability")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
	assert.Nil(t, uc.got.DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		kind   string
	}{
		{
			name:   "bad duration",
			target: "/api/v1/availability?durationMinutes=sixty",
			status: http.StatusBadRequest, kind: "invalid_input",
		},
		{
			name:   "unknown service",
			target: "/api/v1/availability?service=Yoga",
			err:    getAvailability.ErrUnknownService,
			status: http.StatusBadRequest, kind: "invalid_input",
		},
		{
			name:   "bad range",
			target: "/api/v1/availability?from=2024-06-12&to=2024-06-10",
			err:    fmt.Errorf("%w: range reversed", getAvailability.ErrInvalidInput),
			status: http.StatusBadRequest, kind: "invalid_input",
		},
		{
			name:   "store down",
			target: "/api/v1/availability",
			err:    fmt.Errorf("%w: timeout", getAvailability.ErrStoreUnavailable),
			status: http.StatusInternalServerError, kind: "store_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, nopLogger{}), tt.target)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

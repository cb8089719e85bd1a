package create_block

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/redisledger"
	createBlock "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_block"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T) (*Handler, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := redisledger.NewRepository(rdb, "test")
	return NewHandler(createBlock.NewUseCase(repo, nopLogger{}), nopLogger{}), mr
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/blocks", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	h, _ := newHandler(t)

	rec := post(h, `{"date": "2024-06-10", "time": "13:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateBlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Slot blocked successfully.", resp.Message)
	assert.Equal(t, "blocked", resp.Status)
	assert.Equal(t, "2024-06-10", resp.Date)
	assert.Equal(t, "13:00", resp.Time)

	rec = post(h, `{"date": "2024-06-10", "time": "13:00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "This slot is already booked or blocked.", body.Message)
}

func TestHandle_InvalidInput(t *testing.T) {
	h, _ := newHandler(t)

	for _, b := range []string{`{}`, `{"date": "2024-06-10"}`, `not json`} {
		rec := post(h, b)
		assert.Equal(t, http.StatusBadRequest, rec.Code, b)

		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Date and time are required.", body.Message)
	}
}

func TestHandle_StoreDown(t *testing.T) {
	h, mr := newHandler(t)
	mr.Close()

	rec := post(h, `{"date": "2024-06-10", "time": "13:00"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "store_unavailable", body.Error)
}

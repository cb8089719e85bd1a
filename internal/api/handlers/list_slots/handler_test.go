package list_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/internal/infra/storage/fileledger"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	repo, err := fileledger.NewRepository(t.TempDir())
	require.NoError(t, err)

	svc := schedule.NewService(repo, domain.ServiceWindow{EarliestMinute: 540, LatestMinute: 720}, nopLogger{})
	_, err = svc.Publish(context.Background(), &models.PublishRequest{
		From: "2024-06-10", To: "2024-06-11", Times: []string{"11:00", "09:00"},
	})
	require.NoError(t, err)

	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?from=2024-06-11", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"2024-06-11":["09:00","11:00"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?to=11-06-2024", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

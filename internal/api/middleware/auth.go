package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-SlotLedger/internal/api/handlers"
)

// OwnerTokenHeader заголовок с токеном владельца расписания
const OwnerTokenHeader = "X-Owner-Token"

// OwnerAuth пропускает только запросы с токеном владельца.
// Пустой token закрывает маршруты полностью.
func OwnerAuth(token string, logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(OwnerTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("%s %s - owner token rejected, request_id=%s", r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, "Owner token is missing or invalid.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

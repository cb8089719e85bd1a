package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline ограничивает время обработки запроса через контекст.
// Хранилища получают этот контекст, и истекший дедлайн становится store_unavailable.
func Deadline(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

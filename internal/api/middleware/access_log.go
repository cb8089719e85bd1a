package middleware

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *statusRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// AccessLog логирует каждый запрос: 5xx как ошибку, 4xx как предупреждение
func AccessLog(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			const format = "%s %s - status=%d bytes=%d duration=%s request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, status, rec.bytes, time.Since(start), GetRequestID(r.Context())}
			switch {
			case status >= 500:
				logger.Error(format, args...)
			case status >= 400:
				logger.Warn(format, args...)
			default:
				logger.Info(format, args...)
			}
		})
	}
}

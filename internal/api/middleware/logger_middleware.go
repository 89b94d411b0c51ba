package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// 沒呼叫 WriteHeader 代表 200
func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// 記錄request 請求
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recoder := &StatusRecoder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(recoder, r)

			status := recoder.Status()
			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			} else if status >= http.StatusBadRequest {
				event = logger.Warn()
			}
			event.
				Str("request_id", getRequestID(r)).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Dur("elapsed", time.Since(start)).
				Msg("request completed")
		})
	}
}

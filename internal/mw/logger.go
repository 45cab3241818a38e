package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	logx "dashboard/pkg/logger"
)

// RequestLogger logs one line per request with its status, size and latency.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := logx.Info()
			if status >= http.StatusInternalServerError && r.Context().Err() == nil {
				ev = logx.Error()
			}
			ev.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()

		next.ServeHTTP(ww, r)
	})
}

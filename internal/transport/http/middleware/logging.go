package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/scorekeep/score-service/pkg/logger"

	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

// Logging records method, path, status, response size and duration for
// every request, keyed by the chi request ID.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &logResponseWriter{ResponseWriter: w}
		next.ServeHTTP(lrw, r)

		attrs := []slog.Attr{
			slog.String("req_id", middlewareChi.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", lrw.status),
			slog.Int("bytes", lrw.bytes),
			slog.String("duration", time.Since(start).String()),
		}
		attrs = append(attrs, logger.AttrsFromCtx(r.Context())...)
		slog.LogAttrs(r.Context(), slog.LevelInfo, "http request", attrs...)
	})
}

type logResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *logResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *logResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *logResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err
}

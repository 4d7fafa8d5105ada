package httpmiddleware

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// InjectLogger returns a middleware that stores lg, annotated with the
// request id, as the request's context logger. It must run after RequestID.
func InjectLogger(lg *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLg := lg
			if id := RequestIDFromContext(r.Context()); id != "" {
				reqLg = lg.With(zap.String("request_id", id))
			}
			next.ServeHTTP(w, r.WithContext(zctx.Base(r.Context(), reqLg)))
		})
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// LogRequests returns a middleware logging one line per request with the
// context logger.
func LogRequests() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			lg := zctx.From(r.Context())
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
			}
			if status >= http.StatusInternalServerError {
				lg.Warn("Request failed", fields...)
				return
			}
			lg.Info("Request", fields...)
		})
	}
}

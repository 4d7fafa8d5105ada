package httpmiddleware

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Recovery returns a middleware that recovers from panics, logs them with a
// stack trace and the request id, and responds with 500.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zctx.From(r.Context()).Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Stack("stack"),
				)
				w.Header().Set("Connection", "close")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

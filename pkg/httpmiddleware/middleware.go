// Package httpmiddleware provides composable net/http middlewares.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// Wrap applies middlewares to h so that the first one is outermost.
func Wrap(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

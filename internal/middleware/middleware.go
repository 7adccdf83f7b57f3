package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// NewStack composes layers so that the first one listed sees the
// request first.
func NewStack(layers ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(layers) - 1; i >= 0; i-- {
			next = layers[i](next)
		}

		return next
	}
}

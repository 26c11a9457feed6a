package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware. The first
// argument is outermost: Chain(mw1, mw2)(h) is mw1(mw2(h)). Nil entries are
// skipped, so optional layers can be passed unconditionally.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			final = mws[i](final)
		}
		return final
	}
}

// Wrap applies mw to fn, or returns fn unchanged when mw is nil.
func Wrap(mw Middleware, fn http.HandlerFunc) http.Handler {
	if mw == nil {
		return fn
	}
	return mw(fn)
}

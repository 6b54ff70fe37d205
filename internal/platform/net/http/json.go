package http

import (
	"net/http"

	"minishop/internal/platform/net/http/bind"
)

// JSONHandlerWith binds and validates T with o, calls fn and wraps the result in an envelope
func JSONHandlerWith[T any](fn func(*http.Request, T) (any, error), o bind.Options) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, o)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// Package httpkit is the routing surface modules import instead of the platform http package
package httpkit

import (
	"net/http"
	"strings"

	phttp "minishop/internal/platform/net/http"
	"minishop/internal/platform/net/http/bind"
)

type (
	Router   = phttp.Router
	Handler  = phttp.Handler
	Envelope = phttp.Envelope
	Response = phttp.Response
)

// Call adapts a bodiless handler
// a returned Response is written as is, any other value is the 200 data
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts fn under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// PostBound mounts fn under POST with a validated JSON body of at most maxBytes
// unknown fields are ignored, Telegram clients add their own
func PostBound[T any](r Router, path string, maxBytes int64, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandlerWith(fn, bind.Options{MaxBytes: maxBytes}))
}

// MountAPI opens /api/{version} behind mw and hands the group to mount
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

// Package http is the JSON transport modules mount on: router seam, envelope, server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "minishop/internal/platform/net"
)

// Envelope is every JSON body the API writes
// errors fill the Wire fields, successes carry Data
type Envelope struct {
	pnet.Wire
	Data any `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce
// an error Body decides the status itself
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is mapped through the error envelope
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning func to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		if resp.Status == stdhttp.StatusNoContent {
			w.WriteHeader(stdhttp.StatusNoContent)
			return
		}
		status, env := resp.envelope(pnet.RequestID(r.Context()))
		JSON(w, status, env)
	}
}

func (resp Response) envelope(reqID string) (int, Envelope) {
	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := pnet.Error(err, reqID)
		return status, Envelope{Wire: wire}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	return status, Envelope{
		Wire: pnet.Wire{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: reqID},
		Data: resp.Body,
	}
}

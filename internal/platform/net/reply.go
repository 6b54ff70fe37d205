package net

import (
	"net/http"

	perr "minishop/internal/platform/errors"
)

// Wire is the status block of every JSON body, handler envelopes embed it
// middleware that answers on its own (panics, rate limits) writes it bare
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error maps err to its status and wire form, nil is a bare 200
func Error(err error, reqID string) (int, Wire) {
	status := http.StatusOK
	var pw perr.Wire
	if err != nil {
		status, pw = perr.HTTPStatus(err), perr.WireFrom(err)
	}
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       pw.Code,
		Error:      pw.Message,
		Reason:     pw.Reason,
		RequestID:  reqID,
	}
}

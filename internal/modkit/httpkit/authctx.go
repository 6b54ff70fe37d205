package httpkit

import (
	"net/http"
	"strings"

	perrs "minishop/internal/platform/errors"
)

// initDataScheme is the Authorization scheme Telegram Mini Apps use for raw init data
const initDataScheme = "tma "

// InitData returns the raw init data from an "Authorization: tma <initData>" header
// a missing header yields an empty string so the verifier reports the missing signature
func InitData(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", nil
	}
	if len(authz) < len(initDataScheme) || !strings.EqualFold(authz[:len(initDataScheme)], initDataScheme) {
		return "", perrs.Unauthorizedf("unsupported authorization scheme")
	}
	return strings.TrimSpace(authz[len(initDataScheme):]), nil
}

// Package service authenticates Mini App requests and scopes shop data to the caller
package service

import (
	"strings"
	"time"

	"minishop/internal/core/initdata"
	"minishop/internal/platform/logger"
	"minishop/internal/services/gate/domain"
)

const (
	defaultUsersSheet    = "Users"
	defaultProductsSheet = "Products"
	defaultFetchLimit    = 4
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options control service behavior
type Options struct {
	// BotToken is required unless Mode is AuthBypassed
	BotToken  string
	KeyScheme domain.KeyScheme
	Mode      domain.AuthMode
	MaxAge    time.Duration
	Source    domain.IdentitySource

	UsersSheet    string
	ProductsSheet string

	// FetchLimit bounds concurrent product detail calls
	FetchLimit int

	// Now is the clock, defaults to time.Now
	Now func() time.Time
}

// Svc implements the service port
type Svc struct {
	rows domain.RowStore
	shop domain.Shop

	key      []byte
	mode     domain.AuthMode
	maxAge   time.Duration
	source   domain.IdentitySource
	users    string
	products string
	limit    int
	now      func() time.Time
}

// New constructs the service. Missing collaborators or a missing token in enforced mode panic
func New(rows domain.RowStore, shop domain.Shop, opt Options) *Svc {
	if rows == nil {
		panic("gate.Service requires a non nil RowStore")
	}
	if shop == nil {
		panic("gate.Service requires a non nil Shop")
	}

	mode := opt.Mode
	if mode == "" {
		mode = domain.AuthEnforced
	}
	if mode != domain.AuthEnforced && mode != domain.AuthBypassed {
		panic("gate.Service unknown auth mode " + string(mode))
	}
	token := strings.TrimSpace(opt.BotToken)
	if mode == domain.AuthEnforced && token == "" {
		panic("gate.Service requires a bot token when auth is enforced")
	}
	if mode == domain.AuthBypassed {
		logger.Named("gate").Warn().Msg("init data verification is BYPASSED, every request is trusted")
	}

	var key []byte
	switch opt.KeyScheme {
	case domain.KeyWebApp:
		key = initdata.DeriveWebAppKey(token)
	case domain.KeySHA256, "":
		key = initdata.DeriveKey(token)
	default:
		panic("gate.Service unknown key scheme " + string(opt.KeyScheme))
	}

	s := &Svc{
		rows:     rows,
		shop:     shop,
		key:      key,
		mode:     mode,
		maxAge:   opt.MaxAge,
		source:   opt.Source,
		users:    opt.UsersSheet,
		products: opt.ProductsSheet,
		limit:    opt.FetchLimit,
		now:      opt.Now,
	}
	if s.maxAge <= 0 {
		s.maxAge = initdata.DefaultMaxAge
	}
	if s.source == "" {
		s.source = domain.IdentitySigned
	}
	if s.users == "" {
		s.users = defaultUsersSheet
	}
	if s.products == "" {
		s.products = defaultProductsSheet
	}
	if s.limit <= 0 {
		s.limit = defaultFetchLimit
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

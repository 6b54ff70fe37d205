package service

import (
	"context"
	"errors"

	"minishop/internal/core/identity"
	"minishop/internal/core/initdata"
	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	"minishop/internal/services/gate/domain"
)

// authReasons maps verifier failures to the message the caller sees
var authReasons = []struct {
	err    error
	reason string
	msg    string
}{
	{initdata.ErrMissingSignature, "missing_signature", "init data is not signed"},
	{initdata.ErrSignatureMismatch, "signature_mismatch", "init data signature does not match"},
	{initdata.ErrInvalidAuthDate, "invalid_auth_date", "init data has a missing or invalid auth_date"},
	{initdata.ErrExpired, "expired", "init data has expired"},
	{initdata.ErrMalformed, "malformed", "init data is malformed"},
}

// unauthorized wraps a verifier sentinel so errors.Is still finds it
func unauthorized(err error) error {
	for _, r := range authReasons {
		if errors.Is(err, r.err) {
			return perr.WithReason(perr.Wrap(err, perr.ErrorCodeUnauthorized, r.msg), r.reason)
		}
	}
	return perr.Wrap(err, perr.ErrorCodeUnauthorized, "init data rejected")
}

// authenticate verifies c and returns the caller with ctx tagged for logging
// no collaborator is called before it succeeds
func (s *Svc) authenticate(ctx context.Context, c domain.Credentials) (context.Context, domain.ClientUser, error) {
	log := logger.C(ctx).With().Str("component", "gate").Logger()

	p, err := initdata.Parse(c.InitData)
	if s.mode == domain.AuthBypassed {
		if err != nil {
			p = initdata.Payload{}
		}
		u := s.caller(ctx, p, c)
		return logger.WithTelegramUser(ctx, u.ID), u, nil
	}
	if err == nil {
		err = initdata.Verify(p, s.key, s.now(), s.maxAge)
	}
	if err != nil {
		log.Info().Err(err).Msg("init data rejected")
		return ctx, domain.ClientUser{}, unauthorized(err)
	}
	u := s.caller(ctx, p, c)
	return logger.WithTelegramUser(ctx, u.ID), u, nil
}

// caller picks the identity per the configured source
func (s *Svc) caller(ctx context.Context, p initdata.Payload, c domain.Credentials) domain.ClientUser {
	unsafe := c.Unsafe
	if s.source == domain.IdentityClient && !c.SignedOnly {
		return unsafe
	}
	u, ok, err := p.User()
	if err != nil || !ok {
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("component", "gate").Msg("signed user field unreadable, using client user")
		}
		return unsafe
	}
	signed := domain.ClientUser{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
	if unsafe.ID != 0 || unsafe.Username != "" {
		if unsafe.ID != signed.ID || identity.Normalize(unsafe.Username) != identity.Normalize(signed.Username) {
			logger.C(ctx).Warn().
				Str("component", "gate").
				Int64("signed_id", signed.ID).
				Int64("client_id", unsafe.ID).
				Str("signed_username", signed.Username).
				Str("client_username", unsafe.Username).
				Msg("suspicious client user differs from signed user")
		}
	}
	return signed
}

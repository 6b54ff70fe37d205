package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	"minishop/internal/services/gate/domain"
)

// Identify verifies the caller and upserts their row in the users sheet
func (s *Svc) Identify(ctx context.Context, c domain.Credentials) (domain.Profile, error) {
	ctx, u, err := s.authenticate(ctx, c)
	if err != nil {
		return domain.Profile{}, err
	}
	if u.ID == 0 {
		return domain.Profile{}, perr.Newf(perr.ErrorCodeValidation, "init data carries no user id")
	}

	rows, err := s.rows.Read(ctx, s.users)
	if err != nil {
		return domain.Profile{}, upstream(err, "read users")
	}

	id := strconv.FormatInt(u.ID, 10)
	now := s.now().UTC().Format(time.RFC3339)
	p := domain.Profile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	idx := findUser(rows, id)
	if idx < 0 {
		if err := s.rows.Append(ctx, s.users, userRow(nil, p)); err != nil {
			return domain.Profile{}, upstream(err, "append user")
		}
		p.Created = true
		logger.C(ctx).Info().Str("component", "gate").Int64("user_id", u.ID).Msg("user registered")
		return p, nil
	}

	if prev := cell(rows[idx], domain.UserColCreatedAt); prev != "" {
		p.CreatedAt = prev
	}
	if err := s.rows.UpdateRow(ctx, s.users, idx, userRow(rows[idx], p)); err != nil {
		return domain.Profile{}, upstream(err, "update user")
	}
	return p, nil
}

// findUser returns the index of the row whose id column equals id, or -1
func findUser(rows [][]string, id string) int {
	for i, r := range rows {
		if cell(r, domain.UserColID) == id {
			return i
		}
	}
	return -1
}

// userRow lays p out over prev, keeping columns the gate does not own
func userRow(prev []string, p domain.Profile) []string {
	row := make([]string, max(domain.UserRowWidth, len(prev)))
	copy(row, prev)
	row[domain.UserColID] = strconv.FormatInt(p.ID, 10)
	row[domain.UserColUsername] = p.Username
	row[domain.UserColFirstName] = p.FirstName
	row[domain.UserColLastName] = p.LastName
	row[domain.UserColCreatedAt] = p.CreatedAt
	row[domain.UserColUpdatedAt] = p.UpdatedAt
	return row
}

func cell(r []string, i int) string {
	if i < len(r) {
		return strings.TrimSpace(r[i])
	}
	return ""
}

// upstream reports any collaborator failure as unavailable, the cause stays wrapped
// a backend 403 or 404 must not read as the caller's own rejection
func upstream(err error, msg string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
}

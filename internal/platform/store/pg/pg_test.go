package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"minishop/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db"}, nil); err == nil {
		t.Fatal("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{}
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})

	cfg := Config{
		URL:         "postgres://u:p@h:5432/db?sslmode=disable",
		AppName:     "minishop-test",
		MaxConns:    7,
		SlowMs:      123,
		IdleTimeout: 42 * time.Second,
	}
	p, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Pool != fake || p.SlowMs != 123 {
		t.Fatalf("unexpected PG %+v", p)
	}
	if seen.MaxConns != 7 || seen.MaxConnIdleTime != 42*time.Second {
		t.Fatalf("pool config not applied: max=%d idle=%s", seen.MaxConns, seen.MaxConnIdleTime)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "minishop-test" {
		t.Fatalf("application_name = %q", got)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}

package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"minishop/internal/platform/config"
	"minishop/internal/platform/testkit"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type fakeTag int64

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     {}
func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		*(d.(*string)) = r.data[r.i-1][i].(string)
	}
	return nil
}

type fakeRow struct{ v int }

func (r fakeRow) Scan(dest ...any) error { *(dest[0].(*int)) = r.v; return nil }

// fakeQuerier is a TxRunner without Ping
type fakeQuerier struct {
	rows    *fakeRows
	execErr error
	n       int64
}

func (f *fakeQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return fakeTag(f.n), f.execErr
}
func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) { return f.rows, nil }
func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row        { return fakeRow{v: 42} }
func (f *fakeQuerier) Tx(ctx context.Context, fn func(RowQuerier) error) error {
	return fn(f)
}

type pingQuerier struct {
	fakeQuerier
	err error
}

func (p *pingQuerier) Ping(context.Context) error { return p.err }

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatal("nil store must fail guard")
	}
	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("empty store: %v", err)
	}
	if err := (&Store{PG: &fakeQuerier{}}).Guard(context.Background()); err != nil {
		t.Fatalf("non pinger seam should be ignored: %v", err)
	}
	boom := errors.New("boom")
	err := (&Store{PG: &pingQuerier{err: boom}}).Guard(context.Background())
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "pg:") {
		t.Fatalf("expected wrapped pg error, got %v", err)
	}
}

func TestOpen_RedisOnly(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()
	s, err := Open(ctx, Config{AppName: "minishop-test", Redis: RedisConfig{Enabled: true, URL: "redis://" + mr.Addr()}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Redis == nil || s.PG != nil {
		t.Fatalf("unexpected seams redis=%v pg=%v", s.Redis, s.PG)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	mr.Close()
	if err := s.Guard(ctx); err == nil || !strings.Contains(err.Error(), "redis:") {
		t.Fatalf("expected redis guard failure, got %v", err)
	}
	_ = s.Close(ctx)
}

func TestOpen_BadURLs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := Open(ctx, Config{Redis: RedisConfig{Enabled: true, URL: "not a url"}}); err == nil {
		t.Fatal("expected redis url error")
	}
	if _, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: "://bad"}}); err == nil {
		t.Fatal("expected pg parse error")
	}
}

func TestOpen_PGCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("logger not applied: %q", buf.String())
	}
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}, n: 3}

	got, err := Many(ctx, q, func(r Row) (string, error) {
		var s string
		return s, r.Scan(&s)
	}, "select")
	if err != nil || len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Many = %v, %v", got, err)
	}

	empty, err := Many(ctx, &fakeQuerier{rows: &fakeRows{}}, func(Row) (string, error) { return "", nil }, "select")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("Many empty = %#v, %v", empty, err)
	}

	n, err := Affected(ctx, q, "update")
	if err != nil || n != 3 {
		t.Fatalf("Affected = %d, %v", n, err)
	}
	boom := errors.New("boom")
	if _, err := Affected(ctx, &fakeQuerier{execErr: boom}, "update"); !errors.Is(err, boom) {
		t.Fatalf("Affected err = %v", err)
	}

	v, err := Scalar[int](ctx, q, "select 42")
	if err != nil || v != 42 {
		t.Fatalf("Scalar = %d, %v", v, err)
	}
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("SERVICE_REDIS_URL", "redis://cache:6379/0")
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://shop@db/minishop")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "8")
	t.Setenv("SERVICE_PGSQL_PING_TIMEOUT", "1s")

	got := ConfigFrom(config.New(), "minishop-api", true)
	want := Config{
		AppName: "minishop-api",
		PG: PGConfig{
			Enabled: true, URL: "postgres://shop@db/minishop", MaxConns: 8,
			SlowQueryMs: 500, PingTimeout: time.Second,
		},
		Redis: RedisConfig{Enabled: true, URL: "redis://cache:6379/0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ConfigFrom (-want +got):\n%s", diff)
	}

	if got := ConfigFrom(config.New(), "x", false); got.PG.Enabled || got.PG.URL != "" {
		t.Fatalf("pg read without the pg driver: %+v", got.PG)
	}
	t.Setenv("SERVICE_PGSQL_DBURL", "")
	testkit.MustPanic(t, func() { ConfigFrom(config.New(), "x", true) })
}

package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minishop/internal/platform/config"
	phttp "minishop/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestNewServer_Config(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "127.0.0.1:9999")
	hooked := false
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"), func(*chi.Mux) { hooked = true })
	if !hooked {
		t.Fatal("option hook not called")
	}
	if srv.Addr() != "127.0.0.1:9999" {
		t.Fatalf("Addr = %q", srv.Addr())
	}
}

func TestServer_RunServesAndShutsDown(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())
	srv.Router().Get("/meta/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("Run: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener never bound")
	}
	if strings.HasSuffix(srv.Addr(), ":0") {
		t.Fatalf("Addr should report the bound port, got %q", srv.Addr())
	}

	resp, err := http.Get("http://" + srv.Addr() + "/meta/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health = %d %q", resp.StatusCode, body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Run after shutdown = %v, want nil", err)
	}
}

func TestServer_RunBadAddr(t *testing.T) {
	t.Setenv("API_PORT", "not-an-addr")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestMountProfiler(t *testing.T) {
	srv := phttp.NewServer(config.New())
	phttp.MountProfiler(srv.Router(), "debug/", true)

	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if rec := serve(t, srv.Handler(), http.MethodGet, p); rec.Code != http.StatusOK {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}
	if rec := serve(t, srv.Handler(), http.MethodPost, "/debug/pprof/symbol"); rec.Code != http.StatusOK {
		t.Fatalf("symbol POST = %d", rec.Code)
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	srv := phttp.NewServer(config.New())
	phttp.MountProfiler(srv.Router(), "/debug", false)
	if rec := serve(t, srv.Handler(), http.MethodGet, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled = %d", rec.Code)
	}
}

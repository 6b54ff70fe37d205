package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"minishop/internal/modkit/httpkit"
	phttp "minishop/internal/platform/net/http"
	"minishop/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func tag(v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Layer", v)
			next.ServeHTTP(w, r)
		})
	}
}

type gatePorts struct{ Limit int }

func TestBuild_OptionsOverrideDefaults(t *testing.T) {
	b := Build("miniapp", "/miniapp", WithName("shop"), WithPrefix("shop/"), WithPorts(gatePorts{Limit: 7}))
	if b.Name() != "shop" || b.Prefix() != "/shop" {
		t.Fatalf("name=%q prefix=%q", b.Name(), b.Prefix())
	}
	if p, ok := Injected[gatePorts](b); !ok || p.Limit != 7 {
		t.Fatalf("injected = %#v %v", p, ok)
	}
	if _, ok := Injected[string](b); ok {
		t.Fatal("wrong type reported as injected")
	}
	if b.Ports() != nil {
		t.Fatal("base exports no ports")
	}
}

func TestBuild_EmptyNamePanics(t *testing.T) {
	b := Build("", "/x")
	testkit.MustPanic(t, func() { _ = b.Name() })
	testkit.MustPanic(t, func() { _ = Build("x", "/").Prefix() })
}

func TestMountRoutes_MiddlewareOrder(t *testing.T) {
	b := Build("meta", "/meta", WithMiddlewares(tag("injected")))
	b.Use(tag("own"))
	b.Routes(func(r httpkit.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})

	m := chi.NewRouter()
	b.MountRoutes(phttp.AdaptChi(m))

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/version", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.Join(rec.Header().Values("X-Layer"), ","); got != "own,injected" {
		t.Fatalf("layers = %q", got)
	}

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("outside prefix = %d", rec.Code)
	}
}

func TestMiddlewares_Copies(t *testing.T) {
	b := Build("meta", "/meta", WithMiddlewares(tag("a")))
	mw := b.Middlewares()
	mw[0] = nil
	if b.Middlewares()[0] == nil {
		t.Fatal("Middlewares shares storage")
	}
}

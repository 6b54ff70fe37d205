package config

import (
	"testing"
	"time"

	kit "minishop/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestPrefixNests(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q", got)
	}
}

func TestMustStringAndRequire(t *testing.T) {
	c := New().Prefix("TELEGRAM_")
	t.Setenv("TELEGRAM_BOT_TOKEN", "  123:abc ")
	if got := c.MustString("BOT_TOKEN"); got != "123:abc" {
		t.Fatalf("MustString = %q", got)
	}
	c.Require("BOT_TOKEN")

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	kit.MustPanic(t, func() { c.Require("BOT_TOKEN", "MISSING") })

	t.Setenv("TELEGRAM_BOT_TOKEN", "   ")
	kit.MustPanic(t, func() { c.Require("BOT_TOKEN") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("SHOP_")
	t.Setenv("SHOP_PUBLIC_KEY", " pk ")
	t.Setenv("SHOP_FETCH_LIMIT", " 8 ")
	t.Setenv("SHOP_TIMEOUT", "150ms")
	t.Setenv("SHOP_DEBUG", "true")

	if got := c.MayString("PUBLIC_KEY", "x"); got != "pk" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("SECRET_KEY", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("FETCH_LIMIT", 4); got != 8 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if !c.MayBool("DEBUG", false) || !c.MayBool("MISSING", true) {
		t.Fatal("MayBool")
	}
}

func TestMayInvalidFallsBack(t *testing.T) {
	c := New().Prefix("SHOP_")
	t.Setenv("SHOP_FETCH_LIMIT", "four")
	t.Setenv("SHOP_TIMEOUT", "soon")
	t.Setenv("SHOP_DEBUG", "maybe")
	if got := c.MayInt("FETCH_LIMIT", 4); got != 4 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayDuration("TIMEOUT", 10*time.Second); got != 10*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if c.MayBool("DEBUG", false) {
		t.Fatal("MayBool should fall back")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"https://web.telegram.org"}
	if diff := cmp.Diff(def, c.MayCSV("CORS_ORIGINS", def)); diff != "" {
		t.Fatalf("unset (-want +got):\n%s", diff)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ,  ,")
	if diff := cmp.Diff(def, c.MayCSV("CORS_ORIGINS", def)); diff != "" {
		t.Fatalf("blank entries (-want +got):\n%s", diff)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example, ,https://b.example ,, ")
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, c.MayCSV("CORS_ORIGINS", nil)); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestMayURLs(t *testing.T) {
	c := New().Prefix("SHOP_")
	if got := c.MayURLs("HOSTS", nil); got != nil {
		t.Fatalf("unset = %#v", got)
	}
	t.Setenv("SHOP_HOSTS", "https://primary.example/ , http://10.0.0.2:8080")
	want := []string{"https://primary.example/", "http://10.0.0.2:8080"}
	if diff := cmp.Diff(want, c.MayURLs("HOSTS", nil)); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	for _, bad := range []string{"primary.example", "/api", "ftp://x.example", "https://"} {
		t.Setenv("SHOP_HOSTS", "https://ok.example,"+bad)
		kit.MustPanic(t, func() { _ = c.MayURLs("HOSTS", nil) })
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("ROWSTORE_")
	if got := c.MayEnum("DRIVER", "sheets", "sheets", "pg"); got != "sheets" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("ROWSTORE_DRIVER", " PG ")
	if got := c.MayEnum("DRIVER", "sheets", "sheets", "pg"); got != "pg" {
		t.Fatalf("case folded = %q, want pg", got)
	}
	t.Setenv("ROWSTORE_DRIVER", "mysql")
	kit.MustPanic(t, func() { _ = c.MayEnum("DRIVER", "sheets", "sheets", "pg") })
}

package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"minishop/internal/platform/logger"
	"minishop/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// take returns and clears the JSON lines written so far
func (b *lockedBuffer) take(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	b.buf.Reset()
	return out
}

var logs lockedBuffer

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &logs})
	os.Exit(m.Run())
}

func accessLine(t *testing.T) map[string]any {
	t.Helper()
	for _, l := range logs.take(t) {
		if l["message"] == "request done" {
			return l
		}
	}
	t.Fatal("no access log line")
	return nil
}

func TestAccessLog_RoutePatternAndBytes(t *testing.T) {
	logs.take(t)
	m := chi.NewRouter()
	m.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{}))
	m.Post("/miniapp/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "hi")
		_, _ = io.WriteString(w, "there")
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/miniapp/orders/42", nil))
	if rr.Code != http.StatusCreated || rr.Body.String() != "hithere" {
		t.Fatalf("response %d %q", rr.Code, rr.Body.String())
	}

	l := accessLine(t)
	if l["level"] != "info" || l["status"] != float64(201) || l["bytes"] != float64(7) {
		t.Fatalf("line = %v", l)
	}
	if l["route"] != "/miniapp/orders/{id}" || l["path"] != "/miniapp/orders/42" {
		t.Fatalf("route/path = %v %v", l["route"], l["path"])
	}
}

func TestAccessLog_Levels(t *testing.T) {
	cases := []struct {
		name   string
		slow   time.Duration
		status int
		level  string
	}{
		{"ok", 0, http.StatusOK, "info"},
		{"implicit 200", 0, 0, "info"},
		{"slow", time.Nanosecond, http.StatusOK, "warn"},
		{"server error wins over slow", time.Nanosecond, http.StatusBadGateway, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs.take(t)
			h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: tc.slow})(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(10 * time.Microsecond)
					if tc.status != 0 {
						w.WriteHeader(tc.status)
					}
				}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/meta/ready", nil))

			l := accessLine(t)
			want := tc.status
			if want == 0 {
				want = http.StatusOK
			}
			if l["level"] != tc.level || l["status"] != float64(want) {
				t.Fatalf("line = %v", l)
			}
			if _, ok := l["route"]; ok {
				t.Fatalf("route without chi = %v", l["route"])
			}
		})
	}
}

package version

import (
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_FillsFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Main:      debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "9f1c2e7"},
			{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	want := BuildInfo{
		Service: "minishop-api", Version: "v0.3.1", Commit: "9f1c2e7",
		Date: "2026-09-30T12:00:00Z", GoVersion: "go1.25.0", Dirty: true,
	}
	if diff := cmp.Diff(want, resolve(bi)); diff != "" {
		t.Fatalf("resolve (-want +got):\n%s", diff)
	}
}

func TestResolve_StampWins(t *testing.T) {
	version, commit, date = "v1.0.0", "abcd", "2026-10-01"
	t.Cleanup(func() { version, commit, date = "dev", "", "" })

	got := resolve(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	})
	if got.Version != "v1.0.0" || got.Commit != "abcd" || got.Date != "2026-10-01" {
		t.Fatalf("got %+v", got)
	}
}

func TestResolve_NoBuildInfo(t *testing.T) {
	if got := resolve(nil); got.Version != "dev" || got.Service != "minishop-api" {
		t.Fatalf("got %+v", got)
	}
}

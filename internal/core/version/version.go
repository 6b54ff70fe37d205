// Package version reports what build is running
package version

import (
	"runtime/debug"
	"sync"
)

// stamped with -ldflags "-X minishop/internal/core/version.version=v0.3.0 -X ...commit=... -X ...date=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var info = sync.OnceValue(func() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
})

// Info is the ldflags stamp, filled in from the Go build info where unstamped
func Info() BuildInfo { return info() }

func resolve(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Service: "minishop-api", Version: version, Commit: commit, Date: date}
	if bi == nil {
		return out
	}
	out.GoVersion = bi.GoVersion
	if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		out.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "" {
				out.Date = s.Value
			}
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}
	return out
}

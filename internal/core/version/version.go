// Package version reports what build of oilwatch is running
package version

import (
	"runtime"
	"runtime/debug"
)

// Stamped with -ldflags "-X oilwatch/internal/core/version.version=v0.3.0 ...".
// commit falls back to the vcs revision the go toolchain embeds
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// BuildInfo is served by /meta/version and printed by oilwatch-report --version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info describes the oilwatch-api build
func Info() BuildInfo {
	return BuildInfo{
		Service: "oilwatch-api",
		Version: version,
		Commit:  Revision(),
		Date:    date,
		Go:      runtime.Version(),
	}
}

// Revision is the short commit, or "unknown" outside a vcs build
func Revision() string {
	if commit != "" {
		return commit
	}
	return vcsRevision(debug.ReadBuildInfo)
}

func vcsRevision(read func() (*debug.BuildInfo, bool)) string {
	bi, ok := read()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

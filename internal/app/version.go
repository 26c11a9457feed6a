package app

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Version, Commit and BuildTime are set via ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/stockcheck-backend/internal/app.Version=1.0.0"
//
// When Commit or BuildTime are left unset, the VCS stamp embedded by the Go
// toolchain fills them in.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var stampOnce sync.Once

// BuildVersion returns the version string used in startup logs and /health.
func BuildVersion() string {
	stampOnce.Do(func() {
		if info, ok := debug.ReadBuildInfo(); ok {
			applyBuildSettings(info.Settings)
		}
	})
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

func applyBuildSettings(settings []debug.BuildSetting) {
	dirty, stamped := false, false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" && s.Value != "" {
				Commit = shortRevision(s.Value)
				stamped = true
			}
		case "vcs.time":
			if BuildTime == "unknown" && s.Value != "" {
				BuildTime = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && stamped {
		Commit += "-dirty"
	}
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

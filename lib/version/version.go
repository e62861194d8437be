// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/ostara/kiosk/lib/version.Commit=$(git rev-parse --short HEAD)"
var (
	Commit    = "unknown"
	Dirty     = "false"
	BuildTime = "unknown"

	// Version is set manually for releases.
	Version = "0.1.0-dev"
)

// Build is the resolved build information.
type Build struct {
	Version   string
	Commit    string
	Dirty     bool
	BuildTime string
}

var (
	resolveOnce sync.Once
	resolved    Build
)

// Current returns the build information, filling anything not set by
// -ldflags from the toolchain's embedded VCS settings.
func Current() Build {
	resolveOnce.Do(func() {
		info, _ := debug.ReadBuildInfo()
		resolved = resolve(info)
	})
	return resolved
}

func resolve(info *debug.BuildInfo) Build {
	build := Build{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildTime: BuildTime,
	}
	if info == nil {
		return build
	}

	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	if build.Commit == "unknown" {
		if revision := settings["vcs.revision"]; revision != "" {
			build.Commit = shortRevision(revision)
			build.Dirty = settings["vcs.modified"] == "true"
		}
	}
	if build.BuildTime == "unknown" && settings["vcs.time"] != "" {
		build.BuildTime = settings["vcs.time"]
	}
	return build
}

func shortRevision(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}

// String formats the build as "0.1.0-dev (abc1234-dirty, 2026-...)".
func (b Build) String() string {
	dirty := ""
	if b.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", b.Version, b.Commit, dirty, b.BuildTime)
}

// Info returns the one-line version string for --version output.
func Info() string {
	return Current().String()
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

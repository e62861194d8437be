// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolveWithoutBuildInfo(t *testing.T) {
	build := resolve(nil)
	if build.Version != Version || build.Commit != Commit {
		t.Errorf("resolve(nil) = %+v, want the ldflags defaults", build)
	}
}

func TestResolveFromVCSSettings(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-05-04T10:00:00Z"},
	}}
	build := resolve(info)
	if build.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want 0123456789ab", build.Commit)
	}
	if !build.Dirty {
		t.Error("Dirty should follow vcs.modified")
	}
	if build.BuildTime != "2026-05-04T10:00:00Z" {
		t.Errorf("BuildTime = %q", build.BuildTime)
	}
	if got, want := build.String(), "0.1.0-dev (0123456789ab-dirty, 2026-05-04T10:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLdflagsTakePrecedence(t *testing.T) {
	previous := Commit
	Commit = "feedbee"
	defer func() { Commit = previous }()

	info := &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}}
	if build := resolve(info); build.Commit != "feedbee" || build.Dirty {
		t.Errorf("resolve = %+v, want the injected commit", build)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) || !strings.Contains(full, "Platform:") {
		t.Errorf("Full() = %q", full)
	}
}

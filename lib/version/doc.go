// Copyright 2026 The Ostara Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the kiosk binary.
//
// [Commit], [Dirty], and [BuildTime] are injected with -ldflags -X.
// When a build did not inject them, the values the Go toolchain
// embedded in the binary (vcs.revision, vcs.modified, vcs.time) are
// used instead, so `go install` builds still identify their commit.
package version

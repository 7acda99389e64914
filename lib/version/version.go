// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Details is the machine readable form of the build information.
type Details struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// vcsStamp reads the commit recorded by the Go toolchain, once.
var vcsStamp = sync.OnceValues(func() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return revision, modified
})

// Get returns the build information.
func Get() Details {
	details := Details{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if details.Commit == "unknown" {
		if revision, modified := vcsStamp(); revision != "" {
			details.Commit = revision
			details.Dirty = modified
		}
	}
	return details
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	details := Get()
	dirty := ""
	if details.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", details.Version, details.Commit, dirty, details.BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	details := Get()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", Info(), details.GoVersion, details.Platform)
}

// Short returns just the version number.
func Short() string {
	return Version
}

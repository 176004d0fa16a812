// Package version reports which dockbar build is running.
//
// Release builds set the values with -ldflags "-X"; plain `go build` and
// `go install` binaries fall back to the VCS stamp the toolchain embeds.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Set by -ldflags at release time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Info describes a build
type Info struct {
	Version string
	Commit  string
	Date    string

	// Modified is set when the binary was built from a dirty tree
	Modified bool
}

var (
	infoOnce sync.Once
	info     Info
)

// Get returns the running build's info
func Get() Info {
	infoOnce.Do(func() {
		info = resolve(version, commit, date, readBuildSettings())
	})

	return info
}

// GetVersion returns the bare version, "dev" for local builds
func GetVersion() string {
	return Get().Version
}

// String renders "v1.2.0 (3f9c2ab, 2026-01-04T10:00:00Z)", dropping
// whatever is unknown
func (i Info) String() string {
	if i.Commit == "" {
		return i.Version
	}

	rev := i.Commit
	if len(rev) > 7 {
		rev = rev[:7]
	}

	if i.Modified {
		rev += "-dirty"
	}

	if i.Date == "" {
		return fmt.Sprintf("%s (%s)", i.Version, rev)
	}

	return fmt.Sprintf("%s (%s, %s)", i.Version, rev, i.Date)
}

func readBuildSettings() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	return settings
}

// resolve prefers linker-set values and fills gaps from the VCS stamp
func resolve(ver, rev, built string, vcs map[string]string) Info {
	i := Info{Version: ver, Commit: rev, Date: built}

	if i.Version == "" {
		i.Version = "dev"
	}

	if i.Commit == "" {
		i.Commit = vcs["vcs.revision"]
		i.Modified = vcs["vcs.modified"] == "true"
	}

	if i.Date == "" {
		i.Date = vcs["vcs.time"]
	}

	return i
}

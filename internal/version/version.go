// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the application name shown in titles and version output.
const AppName = "XBmpWall"

var (
	// Version is injected at build time via:
	// -ldflags "-X github.com/cptspacemanspiff/xbmpwall/internal/version.Version=x.y".
	Version = "1.14"

	// Commit is the git commit hash of the build.
	Commit = "unknown"
)

// Title returns "XBmpWall <version>", used for the window title and -v.
func Title() string {
	return AppName + " " + Version
}

// String returns the long version string including build details.
func String() string {
	if Commit != "unknown" && len(Commit) >= 8 {
		return fmt.Sprintf("%s (commit: %s, %s, %s/%s)", Title(), Commit[:8], runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s (%s, %s/%s)", Title(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

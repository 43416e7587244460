// Package version provides build and version information.
package version

import "runtime"

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X ...version.Commit=<sha>".
var Commit = "dev"

// Milestones:
// 0.3.0 - HTTP API, YAML config, rise/set events in the session log
// 0.2.0 - HYG catalogue loader, asterisms, visibility command
// 0.1.0 - Initial release: stereographic sky view, Sun/Moon/planet models

// String returns the version line printed by --version.
func String() string {
	return Version + " (" + Commit + ", " + runtime.Version() + ")"
}

package version

import (
	"fmt"
	"runtime"
)

// Set via ldflags at build time.
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// BuildInfo contains version and build details.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build information.
func Get() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
}

// String renders the build info on one line for the --version flag.
func (b BuildInfo) String() string {
	return fmt.Sprintf("keyaudit version %s (built: %s, commit: %s, %s)",
		b.Version, b.BuildDate, b.GitCommit, b.GoVersion)
}

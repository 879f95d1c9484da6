// Package version holds build information for envseal.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/reglet-dev/envseal/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information of this binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return i.Version
}

// Full includes commit, build date and toolchain.
func (i Info) Full() string {
	return fmt.Sprintf("%s (%s) built %s with %s for %s", i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}

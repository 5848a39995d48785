// Package version carries build metadata, set at link time:
//
//	go build -ldflags "-X github.com/kamusis/unitgen/internal/version.Version=v0.3.0"
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildDate string `yaml:"build_date"`
	GoVersion string `yaml:"go_version"`
	Platform  string `yaml:"platform"`
}

// Get returns the current build metadata. Commit and build date fall back to
// the VCS stamp the Go toolchain embeds when ldflags did not set them.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.BuildDate == "":
			info.BuildDate = s.Value
		}
	}
	return info
}

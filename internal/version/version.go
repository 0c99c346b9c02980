// Package version holds the mdextract CLI build metadata, injected with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/mdextract/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0" or "1.0.0-dev.5+abc123")
	Version = "dev"

	// Commit is the git commit SHA
	Commit = "unknown"

	// Dirty indicates if the working tree had uncommitted changes
	Dirty = "false"

	// BuildDate is the UTC build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// Info contains structured version information
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single-line version string
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns a multi-line version string with all details
func (i Info) Full() string {
	v := i.Version
	if i.Dirty {
		v += "-dirty"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "mdextract %s\n", v)
	fmt.Fprintf(&sb, "  Commit:     %s\n", i.Commit)
	if i.Dirty {
		sb.WriteString("  Dirty:      yes\n")
	}
	fmt.Fprintf(&sb, "  Built:      %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s", i.Platform)
	return sb.String()
}

// Package buildinfo exposes version metadata for the CLI. Values can be
// overridden at build time via -ldflags. cli.Version and cli.Date are
// honored as fallbacks for external build scripts.
package buildinfo

import (
	"runtime"
	"strings"

	"github.com/flarebyte/myapp/cli"
)

var (
	// Version is the semantic version or custom string.
	Version = "dev"
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build time (optional).
	Date = ""
	// BuiltBy is an optional builder identifier.
	BuiltBy = ""
)

// Info is the resolved build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	BuiltBy string `json:"built_by"`
	Go      string `json:"go"`
	GoOS    string `json:"go_os"`
	GoArch  string `json:"go_arch"`
}

// Current resolves the package variables against the cli fallbacks.
func Current() Info {
	v := Version
	if v == "" {
		v = cli.Version
	}
	if v == "" {
		v = "dev"
	}
	d := Date
	if d == "" {
		d = cli.Date
	}
	return Info{
		Version: v,
		Commit:  Commit,
		Date:    d,
		BuiltBy: BuiltBy,
		Go:      runtime.Version(),
		GoOS:    runtime.GOOS,
		GoArch:  runtime.GOARCH,
	}
}

// ShortCommit is the first seven characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Summary returns a concise single-line version string.
func Summary() string {
	i := Current()
	parts := make([]string, 0, 2)
	if i.Commit != "" {
		parts = append(parts, "commit="+i.ShortCommit())
	}
	if i.Date != "" {
		parts = append(parts, "date="+i.Date)
	}
	if len(parts) == 0 {
		return i.Version
	}
	return i.Version + " (" + strings.Join(parts, ", ") + ")"
}

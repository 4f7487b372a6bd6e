// Package version reports build metadata for docfix.
//
// The string variables are set at build time with -ldflags, for example:
//
//	go build -ldflags "-X go.jacobcolvin.com/docfix/version.Version=v1.2.0"
//
// The revision falls back to the VCS stamp recorded by the Go toolchain.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = revision(debug.ReadBuildInfo)
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Branch    string `json:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current build metadata. An unset version reads "devel".
func Get() Info {
	v := Version
	if v == "" {
		v = "devel"
	}

	return Info{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("docfix %s (%s, %s, %s)", i.Version, i.Revision, i.GoVersion, i.Platform)
}

// Write prints i to w, one field per line, with colored labels when
// colored is set.
func (i Info) Write(w io.Writer, colored bool) error {
	label := color.New(color.FgYellow, color.Bold)
	if colored {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	fields := []struct{ name, value string }{
		{"version", i.Version},
		{"revision", i.Revision},
		{"branch", i.Branch},
		{"build user", i.BuildUser},
		{"build date", i.BuildDate},
		{"go version", i.GoVersion},
		{"platform", i.Platform},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}

		_, err := fmt.Fprintf(w, "%s %s\n", label.Sprintf("%-11s", f.name+":"), f.value)
		if err != nil {
			return fmt.Errorf("write version: %w", err)
		}
	}

	return nil
}

func revision(read func() (*debug.BuildInfo, bool)) string {
	rev := "unknown"

	buildInfo, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

// Package compileinfo reports how the running binary was built, from the
// module and VCS settings that the Go toolchain embeds.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool

	// BuildDate is whatever the binary was given through ldflags, if anything.
	BuildDate string
}

func (c CompileInfo) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s, built with %s", c.Package, c.Version, c.GoVersion)
	if c.Commit != "" {
		fmt.Fprintf(&b, " at commit %s (%s)", c.Commit, c.CommitTime)
	}
	if c.BuildDate != "" {
		fmt.Fprintf(&b, " on %s", c.BuildDate)
	}
	b.WriteString(".")
	if c.Modified {
		b.WriteString(" Files in the repo were modified after that commit.")
	}

	return b.String()
}

// Get reads the embedded build information. Fields the toolchain did not
// record are left empty.
func Get(builddate string) CompileInfo {
	out := CompileInfo{BuildDate: builddate}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer, builddate string) {
	fmt.Fprintln(w, Get(builddate))
}

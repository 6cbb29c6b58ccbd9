// Package buildinfo reports build metadata injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/travelrisk/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/travelrisk/internal/buildinfo.buildDate=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/travelrisk/internal/buildinfo.buildCommit=$(git rev-parse --short HEAD)" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

const notAvailable = "N/A"

var (
	buildVersion = notAvailable
	buildDate    = notAvailable
	buildCommit  = notAvailable
)

// Data is the resolved build metadata.
type Data struct {
	Version string
	Date    string
	Commit  string
}

// Get returns the link-time values. When no version was injected, the
// module version recorded by the Go toolchain is used if there is one.
func Get() Data {
	d := Data{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	if d.Version == notAvailable {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			d.Version = bi.Main.Version
		}
	}
	return d
}

// PrintBuildData writes the build metadata to w, one field per line.
func PrintBuildData(w io.Writer) {
	d := Get()
	fmt.Fprintf(w, "Build version: %s\n", d.Version)
	fmt.Fprintf(w, "Build date: %s\n", d.Date)
	fmt.Fprintf(w, "Build commit: %s\n", d.Commit)
}

// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/wallcheck/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/wallcheck/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/wallcheck/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/wallcheck
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies wallcheck in outgoing HTTP requests.
func UserAgent() string {
	return "wallcheck/" + Version
}

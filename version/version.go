// Package version exposes build information injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/jackzampolin/promptgen/version.GitRelease=v0.1.0 ..."
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
)

// GoInfo describes the Go toolchain and platform the binary was built for.
var GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

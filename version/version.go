// Package version holds build metadata, set with -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag or "dev".
	GitRelease = "dev"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo describes the toolchain and platform.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

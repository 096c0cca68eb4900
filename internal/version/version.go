package version

import (
	"fmt"
	"runtime"

	"github.com/aatumaykin/cronty/internal/constants"
)

// Set at build time via -ldflags "-X github.com/aatumaykin/cronty/internal/version.Version=...".
var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Info is the version block printed by `cronty version`.
func Info() string {
	goVersion := GoVersion
	if goVersion == constants.DefaultGoVersion {
		goVersion = runtime.Version()
	}
	return fmt.Sprintf("cronty %s\nBuild time: %s\nGit commit: %s\nGo version: %s",
		Version, BuildTime, GitCommit, goVersion)
}

func FormatStartupMessage() string {
	return fmt.Sprintf("%s %s (build %s)", constants.ServerName, Version, BuildTime)
}

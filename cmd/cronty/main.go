package main

import (
	"errors"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/aatumaykin/cronty/internal/messages"
	"github.com/aatumaykin/cronty/internal/version"
)

var (
	Version   string = "0.1.0-dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
	GoVersion string = "unknown"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

func init() {
	version.SetInfo(Version, BuildTime, GitCommit, GoVersion)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, messages.FormatError(err))
		}
		os.Exit(1)
	}
}

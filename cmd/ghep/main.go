// Command ghep builds, checks and stores GHEP event records.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ghep/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

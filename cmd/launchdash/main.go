// Command launchdash serves the SpaceX launch records dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/launchdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

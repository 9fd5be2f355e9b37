// pipecalc evaluates single-phase pipe segments from the command line.
//
//	pipecalc demo
//	pipecalc calc --w 150734 --rho 380 --mu 0.054 --id 13.25
//	pipecalc sheet lines.xlsx -o results.xlsx
package main

import (
	"fmt"
	"os"

	"github.com/chiuwenyu/singlephase/internal/cli"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

// version is set with ldflags at build time.
var version = "dev"

func main() {
	telemetry.SetupLogger(os.Stderr, "WARN", "text")

	if err := cli.NewRootCmd(version, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

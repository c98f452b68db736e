// Command mfippa screens documents for MFIPPA (R.S.O. 1990, c. M.56)
// compliance keywords and renders a findings report.
package main

import (
	"errors"
	"fmt"
	"os"
)

const Version = "0.1.0"

// errReported marks a failure whose message is already on stderr.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

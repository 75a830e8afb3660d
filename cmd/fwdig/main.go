// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
)

func main() {
	// Cobra already reports the error together with the usage, so we must
	// not print the error here a second time, see also:
	// https://github.com/spf13/cobra/issues/304
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}

// For CLI unit tests...
var osExit = os.Exit

package main

import (
	"fmt"
	"os"

	"github.com/temirov/checkup/cmd/cli"
)

const (
	exitErrorTemplateConstant          = "%v\n"
	operationalFailureExitCodeConstant = 1
)

// main executes the checkup command-line application and exits with the
// computed status bit flags (0 clean, 4 git problems, 8 home violations, 12 both).
func main() {
	exitCode, executionError := cli.Execute()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		if exitCode == 0 {
			exitCode = operationalFailureExitCodeConstant
		}
	}
	os.Exit(exitCode)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mcncl/jun/internal/cli"
	"github.com/mcncl/jun/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	if err := cli.Execute(args, stdin, stdout, stderr); err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(stderr, "\nFor help, run: jun --help\n")
		return 1
	}
	return 0
}

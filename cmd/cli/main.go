package main

import (
	"errors"
	"fmt"
	"os"
)

const (
	exitSuccess = 10
	exitInvalid = 15
	exitFailure = 1
)

// exitError carries a process exit code through cobra's error return
type exitError struct {
	code    int
	message string
}

func (err *exitError) Error() string {
	return err.message
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root, a := newRootCommand()
	root.SetArgs(args)

	err := root.Execute()
	a.teardown()
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintln(os.Stderr, err)
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return exitFailure
}

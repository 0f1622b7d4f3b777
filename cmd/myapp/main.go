package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/flarebyte/myapp/cmd/myapp/exitcode"
	"github.com/flarebyte/myapp/cmd/myapp/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := root.Execute(ctx, args, stdout, stderr)
	if err == nil {
		return exitcode.Success
	}
	// Print a short, single-line error to stderr on failures.
	// Do not print usage or stack traces.
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	_, _ = io.WriteString(stderr, msg+"\n")
	code := exitcode.ExecErr
	if ec, ok := err.(exitCoder); ok {
		if c := ec.ExitCode(); c != 0 {
			code = c
		}
	}
	return code
}

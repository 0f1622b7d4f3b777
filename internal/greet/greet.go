// Package greet writes the output of a bare myapp invocation.
package greet

import (
	"fmt"
	"io"

	"github.com/flarebyte/myapp/internal/calc"
)

const (
	DefaultGreeting = "Welcome to MyApp!"
	DefaultSampleA  = 2
	DefaultSampleB  = 3
)

// Settings controls the welcome line and the sample addition.
type Settings struct {
	Greeting string
	SampleA  calc.Operand
	SampleB  calc.Operand
}

// DefaultSettings returns the built-in greeting and the 2 + 3 sample.
func DefaultSettings() Settings {
	return Settings{
		Greeting: DefaultGreeting,
		SampleA:  calc.Operand{Int: DefaultSampleA},
		SampleB:  calc.Operand{Int: DefaultSampleB},
	}
}

// Welcome writes the greeting line followed by "a + b = sum".
func Welcome(w io.Writer, s Settings) error {
	if _, err := fmt.Fprintln(w, s.Greeting); err != nil {
		return err
	}
	sum := s.SampleA.Add(s.SampleB)
	_, err := fmt.Fprintf(w, "%s + %s = %s\n", s.SampleA, s.SampleB, sum)
	return err
}

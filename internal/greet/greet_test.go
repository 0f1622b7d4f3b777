package greet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/flarebyte/myapp/internal/calc"
)

func TestWelcome_Default(t *testing.T) {
	var buf bytes.Buffer
	if err := Welcome(&buf, DefaultSettings()); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	want := "Welcome to MyApp!\n2 + 3 = 5\n"
	if buf.String() != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, buf.String())
	}
}

func TestWelcome_Custom(t *testing.T) {
	var buf bytes.Buffer
	s := Settings{
		Greeting: "Hi",
		SampleA:  calc.Operand{Float: 1.5, IsFloat: true},
		SampleB:  calc.Operand{Int: 2},
	}
	if err := Welcome(&buf, s); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if buf.String() != "Hi\n1.5 + 2 = 3.5\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) { return 0, errWrite }

func TestWelcome_WriteError(t *testing.T) {
	if err := Welcome(failWriter{}, DefaultSettings()); !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
}

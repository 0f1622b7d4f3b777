package exitcode

import (
	"errors"
	"testing"
)

func TestUsagef(t *testing.T) {
	err := Usagef("bad operand %q", "x")
	if err.Error() != `bad operand "x"` {
		t.Fatalf("unexpected error: %v", err)
	}
	ec, ok := err.(interface{ ExitCode() int })
	if !ok || ec.ExitCode() != Usage {
		t.Fatalf("unexpected exit code")
	}
}

func TestAsUsage(t *testing.T) {
	if AsUsage(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	base := errors.New("boom")
	err := AsUsage(base)
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error")
	}
	var e Error
	if !errors.As(err, &e) || e.Code != Usage {
		t.Fatalf("unexpected error: %#v", err)
	}
}

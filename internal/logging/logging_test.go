package logging

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New(false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled by default")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn should be enabled")
	}
	v, err := New(true)
	if err != nil {
		t.Fatalf("new verbose: %v", err)
	}
	if !v.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be enabled when verbose")
	}
}

func TestFrom(t *testing.T) {
	if From(context.Background()) == nil {
		t.Fatalf("expected no-op logger")
	}
	l, err := New(true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := From(WithLogger(context.Background(), l)); got != l {
		t.Fatalf("expected stored logger")
	}
}

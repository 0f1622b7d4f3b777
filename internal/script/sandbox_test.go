package script

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEval_Add(t *testing.T) {
	cases := []struct {
		code string
		want any
	}{
		{"add(2, 3)", int64(5)},
		{"add(-1, 1)", int64(0)},
		{"add(0, 0)", int64(0)},
		{"add(1.5, 1)", 2.5},
		{"return add(add(1, 2), 3)", int64(6)},
		{"local x = add(2, 3) return x * 2", int64(10)},
	}
	for _, c := range cases {
		got, err := Eval(context.Background(), c.code, Options{})
		if err != nil {
			t.Fatalf("%s: %v", c.code, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %#v, want %#v", c.code, got, c.want)
		}
	}
}

func TestEval_Values(t *testing.T) {
	got, err := Eval(context.Background(), `return { sum = add(2, 3), label = "five", ok = true }`, Options{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := map[string]any{"sum": int64(5), "label": "five", "ok": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	got, err = Eval(context.Background(), `{ 1, add(1, 1), 3 }`, Options{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !reflect.DeepEqual(got, []any{int64(1), int64(2), int64(3)}) {
		t.Fatalf("unexpected array: %#v", got)
	}
}

func TestEval_ArgumentError(t *testing.T) {
	_, err := Eval(context.Background(), `add("x", 1)`, Options{})
	if err == nil || !strings.HasPrefix(err.Error(), "lua: ") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEval_SyntaxError(t *testing.T) {
	if _, err := Eval(context.Background(), `add(2,`, Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEval_NoFileAccess(t *testing.T) {
	for _, code := range []string{
		`return dofile("/etc/passwd")`,
		`return loadfile("/etc/passwd")`,
		`return io.open("/etc/passwd")`,
		`return os.getenv("HOME")`,
		`return require("os")`,
	} {
		if _, err := Eval(context.Background(), code, Options{}); err == nil {
			t.Fatalf("%s: expected error", code)
		}
	}
}

func TestEval_Timeout(t *testing.T) {
	_, err := Eval(context.Background(), `while true do end return 1`, Options{Timeout: 20 * time.Millisecond})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestEval_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Eval(ctx, `while true do end return 1`, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEval_StackLimit(t *testing.T) {
	code := `local function f(n) if n == 0 then return 0 end return 1 + f(n - 1) end return f(100000)`
	_, err := Eval(context.Background(), code, Options{})
	if !errors.Is(err, ErrMemory) {
		t.Fatalf("expected memory limit, got %v", err)
	}
}

func TestEval_CyclicTable(t *testing.T) {
	for _, code := range []string{
		`local t = {} t[1] = t return t`,
		`local t = {} t.self = t return t`,
		`local a, b = {}, {} a.b = b b.a = a return a`,
	} {
		_, err := Eval(context.Background(), code, Options{})
		if !errors.Is(err, ErrCyclic) {
			t.Fatalf("%s: expected cyclic table error, got %v", code, err)
		}
	}
}

func TestEval_SharedTableIsNotCyclic(t *testing.T) {
	got, err := Eval(context.Background(), `local s = { 1 } return { x = s, y = s }`, Options{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := map[string]any{"x": []any{int64(1)}, "y": []any{int64(1)}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestEval_DeepNesting(t *testing.T) {
	code := `local t = {} local cur = t for i = 1, 100 do cur[1] = {} cur = cur[1] end return t`
	if _, err := Eval(context.Background(), code, Options{}); !errors.Is(err, ErrMemory) {
		t.Fatalf("expected memory limit, got %v", err)
	}
}

func TestEval_TrailingCommentMentioningReturn(t *testing.T) {
	got, err := Eval(context.Background(), `add(2, 3) -- returns five`, Options{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != int64(5) {
		t.Fatalf("got %#v, want 5", got)
	}
}

func TestEval_MemoryLimit(t *testing.T) {
	cases := []string{
		`local s = string.rep('x', 200000000) return #s`,
		`local s = ('x'):rep(200000000) return #s`,
		`local t = {} for i = 1, 2000 do t[i] = string.rep('x', 40) end return t`,
		`return string.rep('x', 70000)`,
	}
	for _, code := range cases {
		if _, err := Eval(context.Background(), code, Options{}); !errors.Is(err, ErrMemory) {
			t.Fatalf("%s: expected memory limit, got %v", code, err)
		}
	}
	got, err := Eval(context.Background(), `return #string.rep('ab', 100)`, Options{})
	if err != nil || got != int64(200) {
		t.Fatalf("small rep: got %#v, %v", got, err)
	}
	if _, err := Eval(context.Background(), `return string.rep('x', 70000)`, Options{MemoryLimitBytes: 1 << 20}); err != nil {
		t.Fatalf("raised limit: %v", err)
	}
}

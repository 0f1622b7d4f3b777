// Package script evaluates small Lua chunks with the calc functions exposed.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/flarebyte/myapp/internal/calc"
)

const (
	DefaultTimeout          = time.Second
	DefaultMemoryLimitBytes = 64 * 1024
)

var (
	ErrTimeout = errors.New("sandbox timeout")
	ErrMemory  = errors.New("sandbox memory limit")
	ErrCyclic  = errors.New("sandbox cyclic table")
)

// Options bounds a single evaluation. Zero values select the defaults.
// MemoryLimitBytes caps the size of the returned value and of strings built
// with string.rep; it also sets the Lua registry ceiling.
type Options struct {
	Timeout          time.Duration
	MemoryLimitBytes int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MemoryLimitBytes <= 0 {
		o.MemoryLimitBytes = DefaultMemoryLimitBytes
	}
	return o
}

func newSandboxLuaState(opts Options) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  registryMaxFromMemory(opts.MemoryLimitBytes),
		RegistryGrowStep: 0,
	})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// Base lib file loaders reach the host filesystem.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)

	if strTbl, ok := L.GetGlobal(lua.StringLibName).(*lua.LTable); ok {
		strTbl.RawSetString("rep", L.NewFunction(boundedRep(opts.MemoryLimitBytes)))
	}

	L.SetGlobal("add", L.NewFunction(luaAdd))
	return L
}

func luaAdd(L *lua.LState) int {
	a := L.CheckNumber(1)
	b := L.CheckNumber(2)
	L.Push(calc.Add(a, b))
	return 1
}

// boundedRep is string.rep refusing to build strings over limit bytes.
func boundedRep(limit int) lua.LGFunction {
	return func(L *lua.LState) int {
		s := L.CheckString(1)
		n := L.CheckInt(2)
		if n <= 0 || s == "" {
			L.Push(lua.LString(""))
			return 1
		}
		if n > limit/len(s) {
			L.RaiseError("%s", ErrMemory.Error())
			return 0
		}
		L.Push(lua.LString(strings.Repeat(s, n)))
		return 1
	}
}

func registryMaxFromMemory(memoryLimitBytes int) int {
	n := memoryLimitBytes / 64
	if n < 128 {
		n = 128
	}
	if n > 4096 {
		n = 4096
	}
	return n
}

// compile loads code as an expression first, so "add(2, 3)" yields its value,
// and falls back to a plain chunk when that does not parse.
func compile(L *lua.LState, code string) (*lua.LFunction, error) {
	if fn, err := L.LoadString("return " + code); err == nil {
		return fn, nil
	}
	return L.LoadString(code)
}

// Eval runs code and returns its first result converted to a Go value.
func Eval(ctx context.Context, code string, opts Options) (any, error) {
	opts = opts.withDefaults()
	L := newSandboxLuaState(opts)
	defer L.Close()

	runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	L.SetContext(runCtx)

	fn, err := compile(L, code)
	if err != nil {
		return nil, fmt.Errorf("lua: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			if ctx.Err() == nil && errors.Is(ctxErr, context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ctx.Err()
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "registry overflow") || strings.Contains(msg, "stack overflow") ||
			strings.Contains(msg, ErrMemory.Error()) {
			return nil, ErrMemory
		}
		return nil, fmt.Errorf("lua: %w", err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return fromLValue(ret, opts.MemoryLimitBytes)
}

package script

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

// maxExactInt is the largest integer a float64 holds without rounding.
const maxExactInt = 1 << 53

// maxTableDepth bounds how deeply nested a returned table may be.
const maxTableDepth = 32

// tableCost is charged per converted table on top of its keys.
const tableCost = 16

// converter turns Lua values into Go values. onPath holds the tables being
// converted above the current one, so a table reachable from itself is caught.
// remaining is the byte budget left for the converted result.
type converter struct {
	onPath    map[*lua.LTable]bool
	remaining *int
}

// fromLValue converts v, failing with ErrMemory once the estimated size of
// the result exceeds limit bytes.
func fromLValue(v lua.LValue, limit int) (any, error) {
	c := converter{onPath: map[*lua.LTable]bool{}, remaining: &limit}
	return c.convert(v, 0)
}

func (c converter) charge(n int) error {
	*c.remaining -= n
	if *c.remaining < 0 {
		return ErrMemory
	}
	return nil
}

func (c converter) convert(v lua.LValue, depth int) (any, error) {
	switch v.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTBool:
		return lua.LVAsBool(v), c.charge(1)
	case lua.LTNumber:
		return fromLNumber(v.(lua.LNumber)), c.charge(8)
	case lua.LTString:
		s := v.String()
		return s, c.charge(len(s))
	case lua.LTTable:
		return c.convertTable(v.(*lua.LTable), depth)
	default:
		return nil, nil
	}
}

func (c converter) convertTable(t *lua.LTable, depth int) (any, error) {
	if c.onPath[t] {
		return nil, ErrCyclic
	}
	if depth >= maxTableDepth {
		return nil, ErrMemory
	}
	if err := c.charge(tableCost); err != nil {
		return nil, err
	}
	c.onPath[t] = true
	defer delete(c.onPath, t)

	before := *c.remaining
	var err error
	arr := []any{}
	isArray := true
	t.ForEach(func(k, val lua.LValue) {
		if !isArray || err != nil {
			return
		}
		if lk, ok := k.(lua.LNumber); ok && int(lk) == len(arr)+1 {
			var x any
			if x, err = c.convert(val, depth+1); err == nil {
				arr = append(arr, x)
			}
		} else {
			isArray = false
		}
	})
	if err != nil {
		return nil, err
	}
	if isArray {
		return arr, nil
	}
	// The partial array pass is discarded, so is its charge.
	*c.remaining = before
	obj := map[string]any{}
	t.ForEach(func(k, val lua.LValue) {
		if err != nil {
			return
		}
		key := k.String()
		if err = c.charge(len(key)); err != nil {
			return
		}
		var x any
		if x, err = c.convert(val, depth+1); err == nil {
			obj[key] = x
		}
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func fromLNumber(n lua.LNumber) any {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
		return int64(f)
	}
	return f
}

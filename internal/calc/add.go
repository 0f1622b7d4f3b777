// Package calc holds the arithmetic behind myapp.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Number is any Go integer or float kind.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Add returns the sum of a and b.
func Add[T Number](a, b T) T {
	return a + b
}

// AddDecimal adds two decimal strings exactly and returns the reduced sum.
func AddDecimal(a, b string) (string, error) {
	x, err := parseDecimal("a", a)
	if err != nil {
		return "", err
	}
	y, err := parseDecimal("b", b)
	if err != nil {
		return "", err
	}
	sum, err := exactAdd(x, y)
	if err != nil {
		return "", err
	}
	sum.Reduce(sum)
	return sum.Text('f'), nil
}

// exactAdd sums x and y with enough precision that no digit is rounded away.
func exactAdd(x, y *apd.Decimal) (*apd.Decimal, error) {
	var intDigits, fracDigits int64
	for _, d := range []*apd.Decimal{x, y} {
		exp := int64(d.Exponent)
		if n := d.NumDigits() + exp; n > intDigits {
			intDigits = n
		}
		if -exp > fracDigits {
			fracDigits = -exp
		}
	}
	prec := intDigits + fracDigits + 1
	if prec < 1 {
		prec = 1
	}
	if prec > math.MaxUint32 {
		return nil, errors.New("decimal add: operands too large")
	}
	var sum apd.Decimal
	if _, err := apd.BaseContext.WithPrecision(uint32(prec)).Add(&sum, x, y); err != nil {
		return nil, fmt.Errorf("decimal add: %w", err)
	}
	return &sum, nil
}

// CanonicalDecimal returns s in reduced plain notation, e.g. "1.50" -> "1.5".
func CanonicalDecimal(s string) (string, error) {
	d, err := parseDecimal("", s)
	if err != nil {
		return "", err
	}
	d.Reduce(d)
	return d.Text('f'), nil
}

func parseDecimal(name, s string) (*apd.Decimal, error) {
	label := "invalid operand"
	if name != "" {
		label += " " + name
	}
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %q", label, s)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("%s: %q (not finite)", label, s)
	}
	return d, nil
}

// Operand is a parsed CLI number. Integers keep full precision: Int when
// they fit an int64, Big otherwise.
type Operand struct {
	Int     int64
	Float   float64
	IsFloat bool
	Big     *apd.Decimal
}

// ParseOperand reads s as an integer when possible, otherwise as a float64.
func ParseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return Operand{Int: i}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		// A well-formed integer literal outside the int64 range.
		d, _, derr := apd.NewFromString(strings.TrimPrefix(s, "+"))
		if derr == nil {
			return Operand{Big: d}, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Operand{}, fmt.Errorf("invalid operand: %q", s)
	}
	return Operand{Float: f, IsFloat: true}, nil
}

func (o Operand) float() float64 {
	switch {
	case o.IsFloat:
		return o.Float
	case o.Big != nil:
		f, _ := o.Big.Float64()
		return f
	default:
		return float64(o.Int)
	}
}

func (o Operand) decimal() *apd.Decimal {
	if o.Big != nil {
		return o.Big
	}
	return apd.New(o.Int, 0)
}

// Add sums two operands, staying in integers unless either side is a float.
// Integer sums that overflow int64 carry on in arbitrary precision.
func (o Operand) Add(p Operand) Operand {
	if o.IsFloat || p.IsFloat {
		return Operand{Float: Add(o.float(), p.float()), IsFloat: true}
	}
	if o.Big == nil && p.Big == nil {
		s := Add(o.Int, p.Int)
		if !overflowed(o.Int, p.Int, s) {
			return Operand{Int: s}
		}
	}
	sum, err := exactAdd(o.decimal(), p.decimal())
	if err != nil {
		// Integer operands never need more precision than exactAdd allows.
		panic(err)
	}
	if i, err := sum.Int64(); err == nil {
		return Operand{Int: i}
	}
	return Operand{Big: sum}
}

// overflowed reports whether a+b wrapped around to s.
func overflowed(a, b, s int64) bool {
	return (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0)
}

// IsInteger reports whether the operand holds an integer value.
func (o Operand) IsInteger() bool {
	return !o.IsFloat
}

func (o Operand) String() string {
	switch {
	case o.IsFloat:
		return strconv.FormatFloat(o.Float, 'g', -1, 64)
	case o.Big != nil:
		return o.Big.Text('f')
	default:
		return strconv.FormatInt(o.Int, 10)
	}
}

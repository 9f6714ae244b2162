package decimal

import "errors"

const (
	// MaxScale is the largest supported scale: mantissas may be divided
	// by powers of ten up to 10**28.
	MaxScale = 28

	// maxPrecision is the number of decimal digits needed to write out
	// the largest 96-bit mantissa.
	maxPrecision = 29
)

// Errors returned by the arithmetic operations. The arithmetic methods
// return no other errors.
var (
	// ErrOverflow is returned when a result's integral part does not fit
	// in 96 bits even at scale 0.
	ErrOverflow = errors.New("decimal: overflow")

	// ErrDivisionByZero is returned by Quo when the divisor is zero.
	ErrDivisionByZero = errors.New("decimal: division by zero")

	// ErrInvalid is returned by Parse for malformed input.
	ErrInvalid = errors.New("decimal: invalid syntax")
)

// A Decimal represents the number (-1)**sign * (hi:lo) / 10**scale,
// with the 96-bit mantissa split into a high 32-bit word and a low
// 64-bit word. The zero value denotes 0.
//
// Zero results of arithmetic may carry a non-zero scale or a set sign
// bit; such values still report IsZero and compare equal to 0 through
// Sub.
type Decimal struct {
	neg   bool
	scale uint8
	hi    uint32
	lo    uint64
}

// New returns the decimal coef / 10**scale.
func New(coef int64, scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, ErrOverflow
	}
	neg := coef < 0
	u := uint64(coef)
	if neg {
		u = -u
	}
	return Decimal{neg: neg, scale: uint8(scale), lo: u}, nil
}

// MustNew is like New but panics on error. It simplifies initialization
// of package-level variables and test fixtures.
func MustNew(coef int64, scale int) Decimal {
	d, err := New(coef, scale)
	if err != nil {
		panic(err)
	}
	return d
}

// FromParts assembles a decimal from the three 32-bit mantissa words in
// little-endian order, a sign and a scale.
func FromParts(lo, mid, hi uint32, neg bool, scale int) (Decimal, error) {
	if scale < 0 || scale > MaxScale {
		return Decimal{}, ErrOverflow
	}
	return Decimal{
		neg:   neg,
		scale: uint8(scale),
		hi:    hi,
		lo:    uint64(mid)<<32 | uint64(lo),
	}, nil
}

// Parts returns the three 32-bit mantissa words in little-endian order,
// the sign and the scale. It is the inverse of FromParts.
func (d Decimal) Parts() (lo, mid, hi uint32, neg bool, scale int) {
	return uint32(d.lo), uint32(d.lo >> 32), d.hi, d.neg, int(d.scale)
}

// Coef returns the 96-bit mantissa as a low 64-bit and a high 32-bit
// word.
func (d Decimal) Coef() (lo uint64, hi uint32) {
	return d.lo, d.hi
}

// Scale returns the decimal's scale, between 0 and MaxScale.
func (d Decimal) Scale() int {
	return int(d.scale)
}

// IsZero reports whether d has a zero mantissa, regardless of sign and
// scale.
func (d Decimal) IsZero() bool {
	return d.lo|uint64(d.hi) == 0
}

// Sign returns -1 for negative d, 0 for zero d and +1 for positive d.
func (d Decimal) Sign() int {
	if d.IsZero() {
		return 0
	}
	if d.neg {
		return -1
	}
	return 1
}

// Neg returns d with its sign flipped.
func (d Decimal) Neg() Decimal {
	d.neg = !d.neg
	return d
}

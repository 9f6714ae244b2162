package decimal

import (
	"math"
	"math/bits"
)

// Add returns the sum d + e. The operand with the smaller scale is
// scaled up to match the other; when the exact sum needs more than 96
// bits, low-order digits are dropped, rounding half to even. Add
// returns ErrOverflow when the integral part of the sum does not fit at
// scale 0.
func (d Decimal) Add(e Decimal) (Decimal, error) {
	return d.addSub(e, false)
}

// Sub returns the difference d - e. It is equivalent to
// d.Add(e.Neg()).
func (d Decimal) Sub(e Decimal) (Decimal, error) {
	return d.addSub(e, true)
}

func (d Decimal) addSub(e Decimal, subtract bool) (Decimal, error) {
	// diff reports whether the operand magnitudes combine by
	// subtraction.
	diff := subtract != (d.neg != e.neg)

	if d.scale == e.scale {
		return addAligned96(d.lo, d.hi, e.lo, e.hi, diff, d.neg, int(d.scale))
	}

	// Order the operands so that l has the smaller scale; l's mantissa
	// is scaled up to match r. The preliminary result sign is the
	// effective sign of the term l contributes.
	l, r := d, e
	resNeg := d.neg
	resScale := int(e.scale)
	delta := int(e.scale) - int(d.scale)
	if delta < 0 {
		delta = -delta
		resScale = int(d.scale)
		resNeg = resNeg != diff
		l, r = r, l
	}

	var num [3]uint64
	hiIdx := 0
	if delta <= powerMax64 {
		pwr := pow10tab[delta]
		h0, l0 := bits.Mul64(l.lo, pwr)
		num[0] = l0
		num[2], num[1] = bits.Mul64(uint64(l.hi), pwr)
		var c uint64
		num[1], c = bits.Add64(num[1], h0, 0)
		num[2] += c
		if num[2] != 0 {
			hiIdx = 2
		} else if num[1] <= math.MaxUint32 {
			// The scaled mantissa still fits in 96 bits.
			return addAligned96(num[0], uint32(num[1]), r.lo, r.hi, diff, resNeg, resScale)
		} else {
			hiIdx = 1
		}
	} else {
		// The scale difference exceeds one 64-bit power of ten; scale
		// up in chunks.
		num[0] = l.lo
		num[1] = uint64(l.hi)
		hiIdx = 1
		if l.hi == 0 {
			hiIdx = 0
			if l.lo == 0 {
				// Scaling zero is still zero; the result is the other
				// operand with its effective sign.
				return Decimal{neg: resNeg != diff, scale: uint8(resScale), lo: r.lo, hi: r.hi}, nil
			}
		}
		for sc := delta; sc > 0; sc -= powerMax64 {
			pwr := pow10tab[powerMax64]
			if sc < powerMax64 {
				pwr = pow10tab[sc]
			}
			mulCarry, l0 := bits.Mul64(pwr, num[0])
			num[0] = l0
			var addCarry uint64
			for cur := 1; cur <= hiIdx; cur++ {
				t := mulCarry
				var p uint64
				mulCarry, p = bits.Mul64(pwr, num[cur])
				num[cur], addCarry = bits.Add64(t, p, addCarry)
			}
			if mulCarry|addCarry != 0 {
				hiIdx++
				num[hiIdx] = mulCarry + addCarry
			}
		}
	}

	// Combine r into the scaled operand at num[0..hiIdx].
	resLo := num[0]
	if diff {
		var b uint64
		resLo, b = bits.Sub64(num[0], r.lo, 0)
		num[1], b = bits.Sub64(num[1], uint64(r.hi), b)
		if b != 0 {
			// Borrow out of the low 128 bits.
			if hiIdx <= 1 {
				// The true result is negative; flip it.
				lo, hi := negate96(resLo, uint32(num[1]))
				return Decimal{neg: !resNeg, scale: uint8(resScale), lo: lo, hi: hi}, nil
			}
			num[2]--
			if num[2] == 0 {
				hiIdx = 1
			}
		}
	} else {
		var c uint64
		resLo, c = bits.Add64(num[0], r.lo, 0)
		num[1], c = bits.Add64(num[1], uint64(r.hi), c)
		if c != 0 {
			if hiIdx < 2 {
				num[2] = 1
				hiIdx = 2
			} else {
				num[2]++
			}
		}
	}

	if hiIdx > 1 || num[1] > math.MaxUint32 {
		num[0] = resLo
		resScale = scaleResult(&num, hiIdx, resScale)
		if resScale < 0 {
			return Decimal{}, ErrOverflow
		}
		resLo = num[0]
	}
	return Decimal{neg: resNeg, scale: uint8(resScale), lo: resLo, hi: uint32(num[1])}, nil
}

// addAligned96 combines two scale-aligned 96-bit mantissas. When diff
// is set the right operand is subtracted from the left, with a borrow
// flipping the result sign; otherwise a carry out of the 96-bit sum
// drops one scale step, rounding half to even on the shed digit.
func addAligned96(lLo uint64, lHi uint32, rLo uint64, rHi uint32, diff, neg bool, scale int) (Decimal, error) {
	if diff {
		lo, b := bits.Sub64(lLo, rLo, 0)
		hi, b2 := bits.Sub32(lHi, rHi, uint32(b))
		if b2 != 0 {
			lo, hi = negate96(lo, hi)
			neg = !neg
		}
		return Decimal{neg: neg, scale: uint8(scale), lo: lo, hi: hi}, nil
	}
	lo, c := bits.Add64(lLo, rLo, 0)
	hi, c2 := bits.Add32(lHi, rHi, uint32(c))
	if c2 != 0 {
		// The sum needs 97 bits. Drop one scale step, or fail when none
		// is left.
		if scale == 0 {
			return Decimal{}, ErrOverflow
		}
		scale--
		q2, r := bits.Div32(1, hi, 10)
		q1, r := bits.Div32(r, uint32(lo>>32), 10)
		q0, r := bits.Div32(r, uint32(lo), 10)
		hi = q2
		lo = uint64(q1)<<32 | uint64(q0)
		if r >= 5 && (r > 5 || q0&1 == 1) {
			lo, hi, _ = add96(lo, hi, 1)
		}
	}
	return Decimal{neg: neg, scale: uint8(scale), lo: lo, hi: hi}, nil
}

package decimal

import "math/bits"

// debugDecimal enables expensive precondition checks in the arithmetic
// primitives.
const debugDecimal = true

const (
	powerMax32 = 9  // largest n with 10**n < 2**32
	powerMax64 = 19 // largest n with 10**n < 2**64
)

var pow10tab = [powerMax64 + 1]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}

// powerOvfl[n] is the largest 96-bit value that can be multiplied by
// 10**n without exceeding 96 bits, split into its upper 64 and lower 32
// bits. Entry 0 is a sentinel covering the whole 96-bit range.
var powerOvfl = [powerMax64 + 1]struct {
	hi uint64
	lo uint32
}{
	{1<<64 - 1, 1<<32 - 1},
	{1844674407370955161, 2576980377},
	{184467440737095516, 687194767},
	{18446744073709551, 2645699854},
	{1844674407370955, 694066715},
	{184467440737095, 2216890319},
	{18446744073709, 2369172679},
	{1844674407370, 4102387834},
	{184467440737, 410238783},
	{18446744073, 3047500985},
	{1844674407, 1593240287},
	{184467440, 3165801135},
	{18446744, 316580113},
	{1844674, 1749644929},
	{184467, 1892951411},
	{18446, 3195772248},
	{1844, 2896557602},
	{184, 2007642678},
	{18, 1918751186},
	{1, 3627848955},
}

// add96 adds v to the 96-bit value (lo, hi). The returned carry is 0 or
// 1.
func add96(lo uint64, hi uint32, v uint64) (uint64, uint32, uint32) {
	l, c := bits.Add64(lo, v, 0)
	h, c2 := bits.Add32(hi, 0, uint32(c))
	return l, h, c2
}

// negate96 returns the two's complement of the 96-bit value (lo, hi).
func negate96(lo uint64, hi uint32) (uint64, uint32) {
	lo = -lo
	hi = ^hi
	if lo == 0 {
		hi++
	}
	return lo, hi
}

// shiftLeft128 returns the high 64 bits of (hi:lo) << s, for s < 32.
// A shift of 0 returns hi: Go defines lo>>64 as 0.
func shiftLeft128(lo, hi uint64, s uint) uint64 {
	return hi<<s | lo>>(64-s)
}

// div96by32 divides the 96-bit value (lo, hi) by den, returning the
// 96-bit quotient and the remainder.
func div96by32(lo uint64, hi uint32, den uint32) (uint64, uint32, uint32) {
	if debugDecimal && den == 0 {
		panic("div96by32: zero divisor")
	}
	q2, r := bits.Div32(0, hi, den)
	q1, r := bits.Div32(r, uint32(lo>>32), den)
	q0, r := bits.Div32(r, uint32(lo), den)
	return uint64(q1)<<32 | uint64(q0), q2, r
}

// div96by64 divides the 96-bit value (nLo, nHi) by a normalized 64-bit
// divisor, returning a 32-bit quotient limb and the 64-bit remainder.
// The divisor must be larger than the upper 64 bits of the dividend.
func div96by64(nLo uint64, nHi uint32, den uint64) (uint32, uint64) {
	if debugDecimal && den>>63 == 0 {
		panic("div96by64: unnormalized divisor")
	}
	if nHi >= uint32(den>>32) {
		// The single-word estimate would overflow 32 bits. Start from a
		// wrapped quotient of 2**32 and correct downward.
		quo := uint32(0)
		rem := uint64(uint32(nLo>>32)-uint32(den))<<32 | uint64(uint32(nLo))
		for {
			quo--
			rem += den
			if rem < den {
				break
			}
		}
		return quo, rem
	}
	if nHi == 0 && nLo < den {
		return 0, nLo
	}
	quo, r := bits.Div32(nHi, uint32(nLo>>32), uint32(den>>32))
	rem := uint64(r)<<32 | uint64(uint32(nLo))
	rem, borrow := bits.Sub64(rem, uint64(quo)*uint64(uint32(den)), 0)
	if borrow != 0 {
		for {
			quo--
			rem += den
			if rem < den {
				break
			}
		}
	}
	return quo, rem
}

// div128by64 divides the 128-bit value (lo, hi) by a normalized 64-bit
// divisor, returning a 64-bit quotient limb and the remainder. When the
// quotient does not fit in 64 bits only its low 64 bits are returned.
func div128by64(lo, hi, den uint64) (uint64, uint64) {
	if debugDecimal && den>>63 == 0 {
		panic("div128by64: unnormalized divisor")
	}
	if hi >= den {
		quo := uint64(0)
		rem := hi
		for {
			quo--
			rem += den
			if rem < den {
				break
			}
		}
		return quo, rem
	}
	return bits.Div64(hi, lo, den)
}

// div128by96 performs a partial division of the 128-bit value (nLo,
// nHi) by the normalized 96-bit divisor (dLo, dHi), yielding a 32-bit
// quotient limb and the 96-bit remainder. The divisor's top word must
// exceed the dividend's.
func div128by96(nLo, nHi, dLo uint64, dHi uint32) (uint32, uint64, uint32) {
	if debugDecimal {
		if dHi>>31 == 0 {
			panic("div128by96: unnormalized divisor")
		}
		if uint32(nHi>>32) >= dHi {
			panic("div128by96: quotient overflow")
		}
	}
	if nHi < uint64(dHi) {
		return 0, nLo, uint32(nHi)
	}
	quo, r32 := bits.Div32(uint32(nHi>>32), uint32(nHi), dHi)
	pHi, pLo := bits.Mul64(dLo, uint64(quo))
	rLo, borrow := bits.Sub64(nLo, pLo, 0)
	rHi, borrow2 := bits.Sub32(r32, uint32(pHi), uint32(borrow))
	if borrow2 != 0 {
		// Estimate was high; add the divisor back until the remainder
		// turns non-negative.
		for {
			quo--
			var c uint64
			rLo, c = bits.Add64(rLo, dLo, 0)
			var c2 uint32
			rHi, c2 = bits.Add32(rHi, dHi, uint32(c))
			if c2 != 0 {
				break
			}
		}
	}
	return quo, rLo, rHi
}

// div160by96 divides the 160-bit value (nLo, nMid, nTop) by the
// normalized 96-bit divisor (dLo, dHi) in two 32-bit quotient steps,
// returning a 64-bit quotient and the 96-bit remainder.
func div160by96(nLo, nMid uint64, nTop uint32, dLo uint64, dHi uint32) (uint64, uint64, uint32) {
	var qHi uint32
	if uint64(nTop)<<32|nMid>>32 >= uint64(dHi) {
		// Divide the upper 128 bits first, through a view of the
		// dividend shifted right by one 32-bit word.
		var rLo uint64
		var rHi uint32
		qHi, rLo, rHi = div128by96(nLo>>32|nMid<<32, nMid>>32|uint64(nTop)<<32, dLo, dHi)
		nLo = nLo&(1<<32-1) | rLo<<32
		nMid = rLo>>32 | uint64(rHi)<<32
	}
	qLo, rLo, rHi := div128by96(nLo, nMid, dLo, dHi)
	return uint64(qHi)<<32 | uint64(qLo), rLo, rHi
}

// mulScale96by32 multiplies the 96-bit value (lo, hi) by pwr, returning
// the low 96 bits of the product and the overflow word.
func mulScale96by32(lo uint64, hi uint32, pwr uint32) (uint64, uint32, uint32) {
	h, l := bits.Mul64(lo, uint64(pwr))
	t := uint64(hi)*uint64(pwr) + h
	return l, uint32(t), uint32(t >> 32)
}

// mulScale96by64 multiplies the 96-bit value (lo, hi) by pwr, returning
// the low 96 bits of the product and bits 96..159 as the overflow word.
func mulScale96by64(lo uint64, hi uint32, pwr uint64) (uint64, uint32, uint64) {
	h, l := bits.Mul64(lo, pwr)
	over, t := bits.Mul64(uint64(hi), pwr)
	var c uint64
	t, c = bits.Add64(t, h, 0)
	over += c
	return l, uint32(t), uint64(uint32(over))<<32 | t>>32
}

package decimal

import (
	"math"
	"math/bits"
)

// searchScale returns how many powers of ten the partial quotient (qLo,
// qHi) can be multiplied by without exceeding 96 bits or a scale of
// MaxScale, or -1 when the needed scale is negative and cannot be
// reached.
func searchScale(qLo uint64, qHi uint32, scale int) int {
	// Multiplying by 10**9 overflows 96 bits once the top word reaches
	// 2**32/10; above that no scaling is possible at all.
	const ovflMaxHi = 429496729

	cur := 0
	if scale < MaxScale && qHi <= ovflMaxHi {
		resHi := uint64(qHi)<<32 | qLo>>32
		done := false
		if scale > MaxScale-powerMax64 {
			// A full 10**19 step would push past the scale cap; check
			// whether the cap can be reached exactly.
			cur = MaxScale - scale
			switch {
			case resHi < powerOvfl[cur].hi:
				done = true
			case resHi == powerOvfl[cur].hi:
				if uint32(qLo) > powerOvfl[cur].lo {
					cur--
				}
				done = true
			}
		}
		if !done {
			if resHi != 0 {
				// Estimate from the bit position, then correct against
				// the exact threshold.
				cur = 63 - (bits.Len64(resHi) - 1)
				cur = (cur*77)>>8 + 1
				if resHi > powerOvfl[cur].hi ||
					resHi == powerOvfl[cur].hi && uint32(qLo) > powerOvfl[cur].lo {
					cur--
				}
			} else {
				cur = powerMax64
			}
		}
	}

	if cur+scale < 0 && cur != powerMax64 {
		return -1
	}
	return cur
}

// Quo returns the quotient d / e. Quotients that terminate within 29
// significant digits are exact, with powers of ten introduced for
// digit extraction removed again so the scale stays minimal; others are
// computed to the full 96-bit precision and rounded half to even on the
// first excess digit. Quo returns ErrDivisionByZero when e is zero and
// ErrOverflow when the integral part of the quotient needs more than 96
// bits.
func (d Decimal) Quo(e Decimal) (Decimal, error) {
	scale := int(d.scale) - int(e.scale)
	unscale := false
	var qLo uint64
	var qHi uint32

	if e.hi == 0 && e.lo <= math.MaxUint32 {
		// 32-bit divisor.
		den := uint32(e.lo)
		if den == 0 {
			return Decimal{}, ErrDivisionByZero
		}
		var rem uint32
		qLo, qHi, rem = div96by32(d.lo, d.hi, den)
		for {
			var cur int
			if rem == 0 {
				// Exact so far; only a negative scale still forces more
				// digits.
				if scale >= 0 {
					break
				}
				cur = -scale
				if cur > powerMax32 {
					cur = powerMax32
				}
			} else {
				// Extract more quotient digits while headroom allows.
				unscale = true
				cur = searchScale(qLo, qHi, scale)
				if cur == 0 {
					// Out of room; round on the remainder.
					t := rem << 1
					if t < rem || t > den || t == den && qLo&1 == 1 {
						qLo, qHi, _ = add96(qLo, qHi, 1)
					}
					break
				}
				if cur < 0 {
					return Decimal{}, ErrOverflow
				}
				if cur > powerMax32 {
					cur = powerMax32
				}
			}
			pwr := uint32(pow10tab[cur])
			scale += cur
			var over uint32
			qLo, qHi, over = mulScale96by32(qLo, qHi, pwr)
			if over != 0 {
				return Decimal{}, ErrOverflow
			}
			n := uint64(rem) * uint64(pwr)
			var q32 uint32
			q32, rem = bits.Div32(uint32(n>>32), uint32(n), den)
			qLo, qHi, _ = add96(qLo, qHi, uint64(q32))
		}
	} else {
		// Shift divisor and dividend left so the divisor's top word has
		// its high bit set.
		t := e.hi
		if t == 0 {
			t = uint32(e.lo >> 32)
		}
		shift := uint(32 - bits.Len32(t))
		remLo := d.lo << shift
		remMid := shiftLeft128(d.lo, uint64(d.hi), shift)
		denLo := e.lo << shift

		if e.hi == 0 {
			// 64-bit divisor.
			den := denLo
			var rem uint64
			qLo, rem = div128by64(remLo, remMid, den)
			for {
				var cur int
				if rem == 0 {
					if scale >= 0 {
						break
					}
					cur = -scale
				} else {
					unscale = true
					cur = searchScale(qLo, qHi, scale)
					if cur == 0 {
						if rem >= 1<<63 || rem<<1 > den || rem<<1 == den && qLo&1 == 1 {
							qLo, qHi, _ = add96(qLo, qHi, 1)
						}
						break
					}
					if cur < 0 {
						return Decimal{}, ErrOverflow
					}
				}
				// The remainder step below needs rem*pwr to stay within
				// 96 bits, so take at most 9 digits at a time.
				if cur > powerMax32 {
					cur = powerMax32
				}
				pwr := uint32(pow10tab[cur])
				scale += cur
				var over uint32
				qLo, qHi, over = mulScale96by32(qLo, qHi, pwr)
				if over != 0 {
					return Decimal{}, ErrOverflow
				}
				h, l := bits.Mul64(rem, uint64(pwr))
				var q32 uint32
				q32, rem = div96by64(l, uint32(h), den)
				qLo, qHi, _ = add96(qLo, qHi, uint64(q32))
			}
		} else {
			// 96-bit divisor.
			denHi := uint32(shiftLeft128(e.lo, uint64(e.hi), shift))
			var rLo uint64
			var rHi uint32
			var q32 uint32
			q32, rLo, rHi = div128by96(remLo, remMid, denLo, denHi)
			qLo = uint64(q32)
			for {
				var cur int
				if rLo|uint64(rHi) == 0 {
					if scale >= 0 {
						break
					}
					cur = -scale
					if cur > powerMax64 {
						cur = powerMax64
					}
				} else {
					unscale = true
					cur = searchScale(qLo, qHi, scale)
					if cur == 0 {
						up := rHi >= 1<<31
						if !up {
							// Compare twice the remainder against the
							// divisor, breaking a tie on the low
							// quotient bit.
							r2, c := bits.Add64(rLo, rLo, 0)
							r2h := rHi<<1 | uint32(c)
							up = r2h > denHi ||
								r2h == denHi && (r2 > denLo || r2 == denLo && qLo&1 == 1)
						}
						if up {
							qLo, qHi, _ = add96(qLo, qHi, 1)
						}
						break
					}
					if cur < 0 {
						return Decimal{}, ErrOverflow
					}
				}
				pwr := pow10tab[cur]
				scale += cur
				var over uint64
				qLo, qHi, over = mulScale96by64(qLo, qHi, pwr)
				if over != 0 {
					return Decimal{}, ErrOverflow
				}
				nLo, nHi32, top := mulScale96by64(rLo, rHi, pwr)
				var q64 uint64
				q64, rLo, rHi = div160by96(nLo, uint64(nHi32)|top<<32, uint32(top>>32), denLo, denHi)
				qLo, qHi, _ = add96(qLo, qHi, q64)
			}
		}
	}

	if unscale {
		// Digit extraction may have introduced unwanted powers of ten;
		// remove them, largest first. The low mantissa bits gate each
		// probe: a multiple of 10**n is a multiple of 2**n.
		for qLo&0xFF == 0 && scale >= 8 {
			sLo, sHi, r := div96by32(qLo, qHi, 100000000)
			if r != 0 {
				break
			}
			qLo, qHi = sLo, sHi
			scale -= 8
		}
		if qLo&0xF == 0 && scale >= 4 {
			if sLo, sHi, r := div96by32(qLo, qHi, 10000); r == 0 {
				qLo, qHi = sLo, sHi
				scale -= 4
			}
		}
		if qLo&0x3 == 0 && scale >= 2 {
			if sLo, sHi, r := div96by32(qLo, qHi, 100); r == 0 {
				qLo, qHi = sLo, sHi
				scale -= 2
			}
		}
		if qLo&0x1 == 0 && scale >= 1 {
			if sLo, sHi, r := div96by32(qLo, qHi, 10); r == 0 {
				qLo, qHi = sLo, sHi
				scale--
			}
		}
	}

	return Decimal{neg: d.neg != e.neg, scale: uint8(scale), lo: qLo, hi: qHi}, nil
}

package decimal

import "math/bits"

// Mul returns the product d * e. The result is exact whenever it fits
// in 96 bits at a scale of at most MaxScale; otherwise excess digits
// are dropped, rounding half to even. Mul returns ErrOverflow when even
// the integral part of the product does not fit.
func (d Decimal) Mul(e Decimal) (Decimal, error) {
	scale := int(d.scale) + int(e.scale)
	neg := d.neg != e.neg

	if d.hi|e.hi == 0 {
		// Both mantissas fit in 64 bits.
		hi, lo := bits.Mul64(d.lo, e.lo)
		if hi == 0 {
			if scale > MaxScale {
				// Shed the excess scale from the 64-bit product in one
				// division. Removing 20 or more digits leaves less than
				// half of one ulp, an exact zero.
				scale -= MaxScale
				if scale > powerMax64 {
					return Decimal{}, nil
				}
				pwr := pow10tab[scale]
				rem := lo % pwr
				lo /= pwr
				half := pwr >> 1
				if rem > half || rem == half && lo&1 == 1 {
					lo++
				}
				scale = MaxScale
			}
			return Decimal{neg: neg, scale: uint8(scale), lo: lo}, nil
		}
		num := [3]uint64{lo, hi}
		scale = scaleResult(&num, 1, scale)
		if scale < 0 {
			return Decimal{}, ErrOverflow
		}
		return Decimal{neg: neg, scale: uint8(scale), lo: num[0], hi: uint32(num[1])}, nil
	}

	// At least one operand uses the top word. Accumulate the partial
	// products into a 192-bit result: lo*lo, the two 64x32 cross terms
	// and hi*hi.
	var num [3]uint64
	var c uint64
	mid, lo := bits.Mul64(d.lo, e.lo)
	num[0] = lo
	num[2] = uint64(d.hi) * uint64(e.hi)

	h, l := bits.Mul64(d.lo, uint64(e.hi))
	mid, c = bits.Add64(mid, l, 0)
	num[2], _ = bits.Add64(num[2], h, c)

	h, l = bits.Mul64(e.lo, uint64(d.hi))
	mid, c = bits.Add64(mid, l, 0)
	num[2], _ = bits.Add64(num[2], h, c)

	num[1] = mid

	hi := 2
	for num[hi] == 0 {
		if hi == 0 {
			return Decimal{}, nil
		}
		hi--
	}
	scale = scaleResult(&num, hi, scale)
	if scale < 0 {
		return Decimal{}, ErrOverflow
	}
	return Decimal{neg: neg, scale: uint8(scale), lo: num[0], hi: uint32(num[1])}, nil
}

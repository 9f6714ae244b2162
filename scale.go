package decimal

import "math/bits"

// reduceScale divides num[0..*hi] in place by the largest power of ten
// that the remaining *scale allows, capped at 10**9 per call. It
// returns the divisor used and the remainder, decrements *scale by the
// cap and drops *hi when the top limb becomes zero.
func reduceScale(num *[3]uint64, hi *int, scale *int) (den, rem uint32) {
	if *scale < powerMax32 {
		den = uint32(pow10tab[*scale])
	} else {
		den = uint32(pow10tab[powerMax32])
	}
	*scale -= powerMax32

	cur := *hi
	var r uint64
	if num[cur] < uint64(den) {
		r = num[cur]
		num[cur] = 0
		if *hi > 0 {
			*hi--
		}
		cur--
	}
	for ; cur >= 0; cur-- {
		num[cur], r = bits.Div64(r, num[cur], uint64(den))
	}
	return den, uint32(r)
}

// scaleResult reduces num[0..hi] to fit in 96 bits at a scale of at
// most MaxScale, rounding half to even on the discarded digits. Digits
// dropped in earlier reduction steps are carried as a sticky flag so a
// final remainder of exactly one half still rounds up when any earlier
// step was inexact. It returns the resulting scale, or -1 when the
// value cannot be represented.
func scaleResult(num *[3]uint64, hi int, scale int) int {
	if debugDecimal && num[hi] == 0 && hi > 0 {
		panic("scaleResult: untrimmed input")
	}

	// Estimate how many decimal digits must go: each excess bit costs
	// log10(2) ~ 77/256 digits, plus one so the estimate never falls
	// short.
	newScale := hi*64 + bits.Len64(num[hi]) - 1 - 96
	if newScale >= 0 {
		newScale = (newScale*77)>>8 + 1
		if newScale > scale {
			return -1
		}
	} else {
		newScale = 0
	}
	if newScale < scale-MaxScale {
		newScale = scale - MaxScale
	}
	if newScale == 0 {
		return scale
	}
	scale -= newScale

	var sticky, rem uint32
	for {
		sticky |= rem
		var den uint32
		den, rem = reduceScale(num, &hi, &newScale)
		if newScale > 0 {
			continue
		}
		if hi > 1 || num[1]>>32 != 0 {
			// The estimate came up one digit short.
			newScale = 1
			scale--
			continue
		}
		half := den >> 1 // powers of ten are even
		if rem > half || rem == half && (uint32(num[0])&1|sticky) != 0 {
			lo, c := bits.Add64(num[0], 1, 0)
			num[0] = lo
			h := uint32(num[1]) + uint32(c)
			num[1] = uint64(h)
			if c == 1 && h == 0 {
				// Rounding carried out of 96 bits; the mantissa is now
				// 2**96, divide once more by ten.
				num[1] = 1 << 32
				sticky = 0
				rem = 0
				newScale = 1
				scale--
				continue
			}
		}
		if scale < 0 {
			return -1
		}
		return scale
	}
}

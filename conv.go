package decimal

import "math/bits"

// FromDigits builds the decimal closest to 0.<digits> * 10**exp from a
// sign, a string of ASCII digits and a power-of-ten exponent. Digits
// beyond the 96-bit precision are rounded half to even, with up to 20
// further digits inspected to break an apparent tie. Values too large
// to represent collapse to zero and values too small collapse to zero
// at MaxScale; FromDigits never fails.
func FromDigits(neg bool, digits string, exp int) Decimal {
	var lo uint64
	var hi uint32
	e := exp
	i := 0

	if len(digits) == 0 {
		if e > 0 {
			e = 0
		}
	} else {
		if e > maxPrecision {
			return Decimal{}
		}
		for (e > 0 || i < len(digits) && e > -MaxScale) && fits96(lo, hi, next(digits, i)) {
			var dig uint64
			if i < len(digits) {
				dig = uint64(digits[i] - '0')
				i++
			}
			lo, hi = mulAdd10(lo, hi, dig)
			e--
		}
		if i < len(digits) && digits[i] >= '5' {
			round := true
			if digits[i] == '5' && lo&1 == 0 {
				// An apparent tie with an even mantissa: only a nonzero
				// digit in the next 20 breaks it upward.
				count := 20
				j := i + 1
				for j < len(digits) && digits[j] == '0' && count != 0 {
					j++
					count--
				}
				if j == len(digits) || count == 0 {
					round = false
				}
			}
			if round {
				lo, hi, _ = add96(lo, hi, 1)
				if lo == 0 && hi == 0 {
					// Carry out of a mantissa of all nines; restart from
					// 10**28 one scale step up.
					hi = 0x19999999
					lo = 0x99999999_9999999A
					e++
				}
			}
		}
	}

	if e > 0 {
		// Integral part does not fit in 96 bits.
		return Decimal{}
	}
	if e <= -maxPrecision {
		// Too small to represent; collapses to zero at the maximum
		// scale.
		return Decimal{neg: neg, scale: MaxScale}
	}
	return Decimal{neg: neg, scale: uint8(-e), hi: hi, lo: lo}
}

// next returns the i'th digit, or 0 past the end of the string.
func next(digits string, i int) byte {
	if i < len(digits) {
		return digits[i]
	}
	return 0
}

// fits96 reports whether one more digit can be accumulated without the
// mantissa exceeding 96 bits. At the exact threshold 10**28 the answer
// depends on the digit itself: up to '5' still fits (and may round).
func fits96(lo uint64, hi uint32, dig byte) bool {
	switch {
	case hi != 0x19999999:
		return hi < 0x19999999
	case uint32(lo>>32) != 0x99999999:
		return uint32(lo>>32) < 0x99999999
	case uint32(lo) != 0x99999999:
		return uint32(lo) < 0x99999999
	default:
		return dig <= '5'
	}
}

// mulAdd10 returns the 96-bit value (lo, hi) * 10 + dig. The caller
// guards against overflow through fits96.
func mulAdd10(lo uint64, hi uint32, dig uint64) (uint64, uint32) {
	h, l := bits.Mul64(lo, 10)
	l, c := bits.Add64(l, dig, 0)
	return l, hi*10 + uint32(h) + uint32(c)
}

// Parse converts a decimal string to a Decimal. The accepted syntax is
//
//	[+-]digits[.digits][(e|E)[+-]digits]
//
// with at least one digit present. The scale is taken from the literal:
// Parse("1.20") has scale 2 and keeps the trailing zero. Inputs outside
// the representable range collapse to zero the same way FromDigits
// does; malformed inputs return ErrInvalid.
func Parse(s string) (Decimal, error) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	// Collect the significand's digits, tracking the position of the
	// decimal point from its front.
	digits := make([]byte, 0, len(s))
	point := 0
	seen := false
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digits = append(digits, s[i])
		point++
		seen = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			digits = append(digits, s[i])
			seen = true
		}
	}
	if !seen {
		return Decimal{}, ErrInvalid
	}

	exp := 0
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		eneg := false
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			eneg = s[i] == '-'
			i++
		}
		if i == len(s) {
			return Decimal{}, ErrInvalid
		}
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			if exp < 100000 {
				exp = exp*10 + int(s[i]-'0')
			}
		}
		if eneg {
			exp = -exp
		}
	}
	if i != len(s) {
		return Decimal{}, ErrInvalid
	}

	// Strip leading zeros, moving the exponent reference along, then
	// trailing zeros after the decimal point become part of the scale.
	strip := 0
	for strip < len(digits) && digits[strip] == '0' {
		strip++
	}
	return FromDigits(neg, string(digits[strip:]), point-strip+exp), nil
}

// MustParse is like Parse but panics on error. It simplifies
// initialization of package-level variables and test fixtures.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the positional form of d, with as many fractional
// digits as its scale: MustNew(120, 2).String() is "1.20".
func (d Decimal) String() string {
	var buf [maxPrecision + 3]byte
	return string(d.Append(buf[:0]))
}

// Append appends the positional form of d to buf and returns the
// extended buffer.
func (d Decimal) Append(buf []byte) []byte {
	if d.neg {
		buf = append(buf, '-')
	}

	// Split the mantissa into base 10**9 groups, least significant
	// first.
	var groups [4]uint32
	n := 0
	lo, hi := d.lo, d.hi
	for {
		var r uint32
		lo, hi, r = div96by32(lo, hi, 1000000000)
		groups[n] = r
		n++
		if lo|uint64(hi) == 0 {
			break
		}
	}

	var ds [4 * 9]byte
	k := len(ds)
	for g := 0; g < n; g++ {
		v := groups[g]
		for j := 0; j < 9; j++ {
			k--
			ds[k] = byte('0' + v%10)
			v /= 10
		}
	}
	// Drop leading zeros of the most significant group.
	for k < len(ds)-1 && ds[k] == '0' {
		k++
	}

	num := ds[k:]
	s := int(d.scale)
	if s == 0 {
		return append(buf, num...)
	}
	if len(num) <= s {
		buf = append(buf, '0', '.')
		for j := len(num); j < s; j++ {
			buf = append(buf, '0')
		}
		return append(buf, num...)
	}
	buf = append(buf, num[:len(num)-s]...)
	buf = append(buf, '.')
	return append(buf, num[len(num)-s:]...)
}

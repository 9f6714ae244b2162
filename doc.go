/*
Package decimal implements 96-bit fixed-point decimal arithmetic.

A Decimal is a value of the form

	(-1)**sign * mantissa / 10**scale

where the mantissa is a 96-bit unsigned integer and the scale is an
integer between 0 and 28. The largest representable magnitude is 2**96-1
(about 7.9e28) and the smallest positive one is 1e-28. Values are
immutable: arithmetic methods take their operands by value and return a
new Decimal, so a Decimal can be copied and shared freely.

The zero value for a Decimal denotes the number 0 with scale 0:

	var x decimal.Decimal // x is 0

Results are computed exactly whenever the mathematical result fits in 96
bits at a scale of at most 28. When it does not, the mantissa is reduced
by powers of ten, rounding half to even on the discarded digits; only
when no non-negative scale can hold the integral part does an operation
return ErrOverflow. Division by a zero divisor returns ErrDivisionByZero.
No other errors are produced by the arithmetic methods.

Decimals are not normalized: trailing fractional zeros are significant in
the representation (1.00 and 1 have equal values but different scales),
and String preserves them. A zero result of Add or Sub keeps the operand
scale and may carry a sign, so Sub(1.0, 1) is -0.0; IsZero and Sign
report such values as zero. To compare two decimals numerically,
subtract them and inspect Sign; to compare representations, compare the
struct values or the String forms.
*/
package decimal

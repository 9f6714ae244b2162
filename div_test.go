package decimal

import (
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuo(t *testing.T) {
	for i, td := range []struct {
		x, y, want string
		err        error
	}{
		// terminating quotients come out exact at minimal scale
		{"1", "8", "0.125", nil},
		{"6", "3", "2", nil},
		{"10", "2", "5", nil},
		{"5.5", "2.2", "2.5", nil},
		{"-7.5", "-2.5", "3", nil},
		{"0", "5", "0", nil},
		// repeating quotients fill all 29 digits and round half to even
		{"1", "3", "0.3333333333333333333333333333", nil},
		{"2", "3", "0.6666666666666666666666666667", nil},
		{"-1", "3", "-0.3333333333333333333333333333", nil},
		{"22", "7", "3.1428571428571428571428571429", nil},
		{"100", "3", "33.333333333333333333333333333", nil},
		{"1.000000000000000000000000000", "3", "0.3333333333333333333333333333", nil},
		{"1", "0", "", ErrDivisionByZero},
		{"0", "0", "", ErrDivisionByZero},
		// negative natural scale forces extra digit extraction
		{"1", "0.0000000000000000000000000001", "10000000000000000000000000000", nil},
		{"79228162514264337593543950335", "0.1", "", ErrOverflow},
		{"79228162514264337593543950335", "0.5", "", ErrOverflow},
		// 64-bit divisor
		{"1", "18446744073.709551616", "0.0000000000542101086242752217", nil},
		{"123456789012345678901234567.89", "365.25", "338006266974252372077302.03392", nil},
		// 96-bit divisor
		{"1", "7922816251426433759354395033.5", "0.0000000000000000000000000001", nil},
		{"2", "3.000000000000000000000000001", "0.6666666666666666666666666664", nil},
		{"79228162514264337593543950335", "3.000000000000000000000000001", "26409387504754779197847983436", nil},
		{"79228162514264337593543950335", "79228162514264337593543950335", "1", nil},
		{"79228162514264337593543950334", "79228162514264337593543950335", "1", nil},
		{"79228162514264337593543950335", "7.922816251426433759354395033", "10000000000000000000000000001", nil},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			x, y := MustParse(td.x), MustParse(td.y)
			z, err := x.Quo(y)
			require.ErrorIs(t, err, td.err)
			if td.err == nil {
				require.Equal(t, td.want, z.String())
			}
		})
	}
}

func TestQuoMulRoundTrip(t *testing.T) {
	// x/y*y with a terminating quotient restores x's value
	rnd := rand.New(rand.NewSource(6))
	for i := 0; i < 2000; i++ {
		x := randDecimal(rnd)
		y, err := New(int64(rnd.Intn(1000)+1), 0)
		require.NoError(t, err)
		q, err := x.Quo(y)
		if err != nil {
			continue
		}
		// keep only exact quotients
		back, err := q.Mul(y)
		if err != nil {
			continue
		}
		exact := new(big.Rat).Quo(ratOf(x), ratOf(y))
		if ratOf(q).Cmp(exact) != 0 {
			continue
		}
		require.Equal(t, 0, ratOf(back).Cmp(ratOf(x)), "x=%v y=%v q=%v", x, y, q)
	}
}

func TestQuoRounding(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		x, y := randDecimal(rnd), randDecimal(rnd)
		if y.IsZero() {
			_, err := x.Quo(y)
			require.ErrorIs(t, err, ErrDivisionByZero)
			continue
		}
		z, err := x.Quo(y)
		exact := new(big.Rat).Quo(ratOf(x), ratOf(y))
		if err != nil {
			require.ErrorIs(t, err, ErrOverflow)
			requireOverflows(t, exact, "x=%v y=%v", x, y)
			continue
		}
		requireHalfEven(t, z, exact, "x=%v y=%v", x, y)
	}
}

func TestQuoSigns(t *testing.T) {
	for i, td := range []struct {
		x, y string
		sign int
	}{
		{"1", "3", 1},
		{"-1", "3", -1},
		{"1", "-3", -1},
		{"-1", "-3", 1},
		{"0", "-3", 0},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			z, err := MustParse(td.x).Quo(MustParse(td.y))
			require.NoError(t, err)
			require.Equal(t, td.sign, z.Sign())
		})
	}
}

package decimal

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func big96(lo uint64, hi uint32) *big.Int {
	z := new(big.Int).SetUint64(uint64(hi))
	z.Lsh(z, 64)
	return z.Or(z, new(big.Int).SetUint64(lo))
}

func big128(lo, hi uint64) *big.Int {
	z := new(big.Int).SetUint64(hi)
	z.Lsh(z, 64)
	return z.Or(z, new(big.Int).SetUint64(lo))
}

// low64 returns the low 64 bits of x; big.Int.Uint64 is undefined for
// wider values.
func low64(x *big.Int) uint64 {
	return new(big.Int).And(x, new(big.Int).SetUint64(^uint64(0))).Uint64()
}

func TestAdd96(t *testing.T) {
	lo, hi, carry := add96(^uint64(0), ^uint32(0), 1)
	require.EqualValues(t, 0, lo)
	require.EqualValues(t, 0, hi)
	require.EqualValues(t, 1, carry)

	lo, hi, carry = add96(^uint64(0), 7, 1)
	require.EqualValues(t, 0, lo)
	require.EqualValues(t, 8, hi)
	require.EqualValues(t, 0, carry)
}

func TestNegate96(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint32()
		nLo, nHi := negate96(lo, hi)
		// x + (-x) wraps to zero mod 2**96
		sLo, sHi, _ := add96(nLo, nHi, lo)
		sHi += hi
		require.EqualValues(t, 0, sLo)
		require.EqualValues(t, 0, sHi)
	}
}

func TestShiftLeft128(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint64()
		s := uint(rnd.Intn(32))
		got := shiftLeft128(lo, hi, s)
		want := big128(lo, hi)
		want.Lsh(want, s).Rsh(want, 64)
		require.Equal(t, low64(want), got, "lo=%#x hi=%#x s=%d", lo, hi, s)
	}
}

func TestDiv96By32(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint32()
		den := uint32(rnd.Uint64())
		if den == 0 {
			den = 1
		}
		qLo, qHi, rem := div96by32(lo, hi, den)
		n := big96(lo, hi)
		wantQ, wantR := new(big.Int).DivMod(n, new(big.Int).SetUint64(uint64(den)), new(big.Int))
		require.Equal(t, wantQ, big96(qLo, qHi), "n=%v den=%d", n, den)
		require.Equal(t, wantR.Uint64(), uint64(rem))
	}
}

func TestDiv96By64(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for i := 0; i < 10000; i++ {
		den := rnd.Uint64() | 1<<63 // normalized
		hi := uint32(rnd.Uint64())
		if hi >= uint32(den>>32) {
			hi = uint32(den>>32) - 1
		}
		lo := rnd.Uint64()
		q, r := div96by64(lo, hi, den)
		n := big96(lo, hi)
		wantQ, wantR := new(big.Int).DivMod(n, new(big.Int).SetUint64(den), new(big.Int))
		require.Equal(t, wantQ.Uint64(), uint64(q), "n=%v den=%d", n, den)
		require.Equal(t, wantR.Uint64(), r)
	}
}

func TestDiv128By64(t *testing.T) {
	rnd := rand.New(rand.NewSource(14))
	for i := 0; i < 10000; i++ {
		den := rnd.Uint64() | 1<<63
		lo, hi := rnd.Uint64(), rnd.Uint64()
		if hi >= den {
			hi -= den
		}
		q, r := div128by64(lo, hi, den)
		n := big128(lo, hi)
		wantQ, wantR := new(big.Int).DivMod(n, new(big.Int).SetUint64(den), new(big.Int))
		require.Equal(t, wantQ.Uint64(), q, "n=%v den=%d", n, den)
		require.Equal(t, wantR.Uint64(), r)
	}
}

func TestDiv128By96(t *testing.T) {
	rnd := rand.New(rand.NewSource(15))
	for i := 0; i < 20000; i++ {
		dHi := rnd.Uint32() | 1<<31 // normalized
		dLo := rnd.Uint64()
		nLo, nHi := rnd.Uint64(), rnd.Uint64()
		if uint32(nHi>>32) >= dHi {
			nHi = uint64(dHi-1)<<32 | nHi&(1<<32-1)
		}
		q, rLo, rHi := div128by96(nLo, nHi, dLo, dHi)
		n := big128(nLo, nHi)
		den := big96(dLo, dHi)
		wantQ, wantR := new(big.Int).DivMod(n, den, new(big.Int))
		require.Equal(t, wantQ.Uint64(), uint64(q), "n=%v den=%v", n, den)
		require.Equal(t, wantR, big96(rLo, rHi))
	}
}

func TestDiv160By96(t *testing.T) {
	rnd := rand.New(rand.NewSource(16))
	for i := 0; i < 20000; i++ {
		dHi := rnd.Uint32() | 1<<31
		dLo := rnd.Uint64()
		nLo, nMid := rnd.Uint64(), rnd.Uint64()
		nTop := rnd.Uint32()
		if nTop >= dHi {
			nTop = dHi - 1
		}
		q, rLo, rHi := div160by96(nLo, nMid, nTop, dLo, dHi)
		n := new(big.Int).SetUint64(uint64(nTop))
		n.Lsh(n, 64).Or(n, new(big.Int).SetUint64(nMid))
		n.Lsh(n, 64).Or(n, new(big.Int).SetUint64(nLo))
		den := big96(dLo, dHi)
		wantQ, wantR := new(big.Int).DivMod(n, den, new(big.Int))
		require.Equal(t, wantQ.Uint64(), q, "n=%v den=%v", n, den)
		require.Equal(t, wantR, big96(rLo, rHi))
	}
}

func TestMulScale96By32(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint32()
		pwr := uint32(pow10tab[rnd.Intn(powerMax32+1)])
		pLo, pHi, over := mulScale96by32(lo, hi, pwr)
		want := new(big.Int).Mul(big96(lo, hi), new(big.Int).SetUint64(uint64(pwr)))
		require.Equal(t, low64(want), pLo, "lo=%#x hi=%#x pwr=%d", lo, hi, pwr)
		want.Rsh(want, 64)
		require.Equal(t, want.Uint64(), uint64(pHi)|uint64(over)<<32)
	}
}

func TestMulScale96By64(t *testing.T) {
	rnd := rand.New(rand.NewSource(18))
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint32()
		pwr := pow10tab[10+rnd.Intn(10)]
		pLo, pHi, over := mulScale96by64(lo, hi, pwr)
		want := new(big.Int).Mul(big96(lo, hi), new(big.Int).SetUint64(pwr))
		require.Equal(t, low64(want), pLo, "lo=%#x hi=%#x pwr=%d", lo, hi, pwr)
		mid := new(big.Int).Rsh(want, 64)
		require.Equal(t, uint64(pHi), low64(mid)&(1<<32-1))
		require.Equal(t, want.Rsh(want, 96).Uint64(), over)
	}
}

func TestPow10Tab(t *testing.T) {
	p := uint64(1)
	for i, v := range pow10tab {
		require.Equal(t, p, v, "index %d", i)
		if i < len(pow10tab)-1 {
			p *= 10
		}
	}
}

func TestPowerOvfl(t *testing.T) {
	// row n holds (2**96-1) / 10**n split into bits 32..95 and 0..31
	max := big96(^uint64(0), ^uint32(0))
	for n, row := range powerOvfl {
		x := new(big.Int).Div(max, new(big.Int).SetUint64(pow10tab[n]))
		require.EqualValues(t, uint32(low64(x)), row.lo, "row %d", n)
		require.Equal(t, x.Rsh(x, 32).Uint64(), row.hi, "row %d", n)
	}
}

package numtheory

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/math/sample"
)

func testRand() io.Reader {
	return sample.DeterministicReader([]byte("numtheory-test-seed"))
}

func n(x int64) *BigInt.Nat { return BigInt.New().SetInt64(x) }

func TestFactorSmallNumbers(t *testing.T) {
	rand := testRand()
	cases := map[int64]map[string]int{
		1:   {},
		2:   {"2": 1},
		12:  {"2": 2, "3": 1},
		360: {"2": 3, "3": 2, "5": 1},
		97:  {"97": 1},
	}
	for value, want := range cases {
		f, err := Factor(rand, n(value))
		require.NoError(t, err)
		got := map[string]int{}
		for _, e := range f.Entries() {
			got[e.Prime.String()] = e.Exp
		}
		assert.Equal(t, want, got, "factoring %d", value)
		assert.Equal(t, n(value).String(), f.Product().String())
	}
}

func TestFactorLargeSemiprime(t *testing.T) {
	rand := testRand()
	// 1000003 * 1000033 (both prime), well beyond the trial division bound.
	p := n(1000003)
	q := n(1000033)
	product := BigInt.New().Mul(p, q)

	f, err := Factor(rand, product)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, product.String(), f.Product().String())
	assert.Equal(t, 1, f.Exponent(p))
	assert.Equal(t, 1, f.Exponent(q))
}

func TestTotient(t *testing.T) {
	rand := testRand()
	cases := map[int64]int64{
		1:  1,
		9:  6,
		36: 12,
		17: 16, // prime
	}
	for value, want := range cases {
		got, err := Totient(rand, n(value))
		require.NoError(t, err)
		assert.Equal(t, n(want).String(), got.String(), "phi(%d)", value)
	}
}

func TestOrder(t *testing.T) {
	rand := testRand()
	order, err := Order(rand, n(2), n(13))
	require.NoError(t, err)
	assert.Equal(t, n(12).String(), order.String())

	_, err = Order(rand, n(6), n(9))
	assert.ErrorIs(t, err, ErrNotCoprime)
}

func TestOrderDividesTotient(t *testing.T) {
	rand := testRand()
	for _, modulus := range []int64{7, 11, 13, 17, 21, 24, 100} {
		phi, err := Totient(rand, n(modulus))
		require.NoError(t, err)
		for base := int64(1); base < modulus; base++ {
			if BigInt.GCD(n(base), n(modulus)).String() != "1" {
				continue
			}
			order, err := Order(rand, n(base), n(modulus))
			require.NoError(t, err)
			_, r := BigInt.New().DivMod(phi, order)
			assert.True(t, r.IsZero(), "order(%d) should divide phi(%d)", base, modulus)
		}
	}
}

func TestCRT(t *testing.T) {
	x, err := CRT([]*BigInt.Nat{n(3), n(5), n(7)}, []*BigInt.Nat{n(2), n(3), n(1)})
	require.NoError(t, err)
	assert.Equal(t, n(5).String(), x.String())

	x, err = CRT([]*BigInt.Nat{n(1), n(4), n(6)}, []*BigInt.Nat{n(3), n(5), n(7)})
	require.NoError(t, err)
	assert.Equal(t, n(34).String(), x.String())
}

func TestCRTRejectsNonCoprimeModuli(t *testing.T) {
	_, err := CRT([]*BigInt.Nat{n(2), n(5)}, []*BigInt.Nat{n(6), n(9)})
	assert.Error(t, err)
}

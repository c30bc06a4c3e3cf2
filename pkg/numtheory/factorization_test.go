package numtheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorizationCBORRoundTrip(t *testing.T) {
	rand := testRand()
	f, err := Factor(rand, n(2520)) // 2^3 * 3^2 * 5 * 7
	require.NoError(t, err)

	data, err := f.MarshalBinary()
	require.NoError(t, err)

	got := NewFactorization()
	require.NoError(t, got.UnmarshalBinary(data))

	assert.Equal(t, f.Product().String(), got.Product().String())
	assert.Equal(t, f.Len(), got.Len())
	for _, e := range f.Entries() {
		assert.Equal(t, e.Exp, got.Exponent(e.Prime))
	}
}

package dlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DiscreteLog/internal/dlogtest"
	"DiscreteLog/pkg/dlog"
)

func TestDiscreteLogAgainstVectors(t *testing.T) {
	for _, v := range dlogtest.Vectors {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			d := dlog.NewDispatcher(dlog.WithRand(dlogtest.DeterministicRand(v.Name)))
			x, err := d.SolveWithOrder(dlogtest.Nat(v.A), dlogtest.Nat(v.B), dlogtest.Nat(v.N), dlogtest.Nat(v.Order))
			require.NoError(t, err)
			require.Equal(t, dlogtest.Nat(v.X), x)
		})
	}
}

func TestDiscreteLogComputesOrderWhenNotSupplied(t *testing.T) {
	d := dlog.NewDispatcher(dlog.WithRand(dlogtest.DeterministicRand("compute-order-mod-41")))
	x, err := d.Solve(dlogtest.Nat(14), dlogtest.Nat(7), dlogtest.Nat(41))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(15), x)
}

func TestDiscreteLogTrivialIdentity(t *testing.T) {
	x, err := dlog.DiscreteLogWithOrder(dlogtest.Nat(1), dlogtest.Nat(7), dlogtest.Nat(41), dlogtest.Nat(40))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(0), x)
}

func TestDiscreteLogTrivialOneStep(t *testing.T) {
	x, err := dlog.DiscreteLogWithOrder(dlogtest.Nat(7), dlogtest.Nat(7), dlogtest.Nat(41), dlogtest.Nat(40))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(1), x)
}

func TestDiscreteLogRejectsModulusBelowTwo(t *testing.T) {
	_, err := dlog.DiscreteLogWithOrder(dlogtest.Nat(0), dlogtest.Nat(0), dlogtest.Nat(1), dlogtest.Nat(1))
	require.ErrorIs(t, err, dlog.InvalidInput)
}

func TestDiscreteLogRejectsOrderMismatch(t *testing.T) {
	_, err := dlog.DiscreteLogWithOrder(dlogtest.Nat(2), dlogtest.Nat(7), dlogtest.Nat(41), dlogtest.Nat(7))
	require.ErrorIs(t, err, dlog.OrderMismatch)
}

func TestDiscreteLogRejectsNonInvertibleBase(t *testing.T) {
	// gcd(6, 9) = 3, so 6 has no multiplicative order mod 9 at all.
	_, err := dlog.DiscreteLog(dlogtest.Nat(3), dlogtest.Nat(6), dlogtest.Nat(9))
	require.ErrorIs(t, err, dlog.InvalidInput)
}

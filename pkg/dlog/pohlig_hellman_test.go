package dlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DiscreteLog/internal/dlogtest"
	"DiscreteLog/pkg/dlog"
)

func TestPohligHellmanAgainstVectors(t *testing.T) {
	for _, v := range dlogtest.Vectors {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			solver := dlog.PohligHellman{Dispatcher: dlog.NewDispatcher(dlog.WithRand(dlogtest.DeterministicRand(v.Name)))}
			x, err := solver.Solve(dlogtest.Nat(v.A), dlogtest.Nat(v.B), dlogtest.Nat(v.N), dlogtest.Nat(v.Order))
			require.NoError(t, err)
			require.Equal(t, dlogtest.Nat(v.X), x)
		})
	}
}

func TestPohligHellmanPrimePowerSubgroupMod16(t *testing.T) {
	// (Z/16Z)* has order 8 and is not cyclic (Z/2 x Z/4); 3 generates the
	// order-4 factor, and 3^2 = 9 (mod 16) exercises the two-digit lift
	// through a single prime power q=2, e=2 directly (no CRT needed,
	// since order is itself one prime power).
	solver := dlog.PohligHellman{}
	x, err := solver.Solve(dlogtest.Nat(9), dlogtest.Nat(3), dlogtest.Nat(16), dlogtest.Nat(4))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(2), x)
}

func TestDispatcherRejectsOrderMismatch(t *testing.T) {
	// 5 has order 2 mod 24 (25 = 1 mod 24), so the claimed order 3 does not
	// annihilate it: 5^3 = 5 (mod 24).
	_, err := dlog.DiscreteLogWithOrder(dlogtest.Nat(1), dlogtest.Nat(5), dlogtest.Nat(24), dlogtest.Nat(3))
	require.ErrorIs(t, err, dlog.OrderMismatch)
}

func TestPohligHellmanRejectsOrderMismatch(t *testing.T) {
	// Called directly, bypassing the Dispatcher: PohligHellman still
	// verifies b^order = 1 (mod n) itself before doing any work.
	solver := dlog.PohligHellman{}
	_, err := solver.Solve(dlogtest.Nat(1), dlogtest.Nat(5), dlogtest.Nat(24), dlogtest.Nat(3))
	require.ErrorIs(t, err, dlog.OrderMismatch)
}

func TestPohligHellmanReducesUnreducedInputs(t *testing.T) {
	// a and b are given far outside [0, n); the solver must reduce them
	// itself rather than trusting a caller to have done so.
	solver := dlog.PohligHellman{}
	x, err := solver.Solve(dlogtest.Nat(9+16), dlogtest.Nat(3+32), dlogtest.Nat(16), dlogtest.Nat(4))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(2), x)
}

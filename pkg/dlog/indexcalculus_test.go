package dlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DiscreteLog/internal/dlogtest"
	"DiscreteLog/pkg/dlog"
)

func TestIndexCalculusSmallPrimeOrderSubgroup(t *testing.T) {
	// 2 has order 11 in (Z/23Z)*: 2^11 = 2048 = 1 (mod 23). The subgroup
	// it generates is {1,2,3,4,6,8,9,12,13,16,18}; 2^5 = 32 = 9 (mod 23),
	// so log_2(9) = 5. The factor base for n = 23 is {2, 3, 5}, and only 2
	// and 3 of those divide any element of this subgroup, so this also
	// exercises dropping the unreachable factor-base prime 5 from the linear
	// system instead of failing.
	solver := dlog.IndexCalculus{Rand: dlogtest.DeterministicRand("index-calculus-mod-23")}
	x, err := solver.Solve(dlogtest.Nat(9), dlogtest.Nat(2), dlogtest.Nat(23), dlogtest.Nat(11))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(5), x)
}

func TestIndexCalculusRejectsCompositeModulus(t *testing.T) {
	solver := dlog.IndexCalculus{Rand: dlogtest.DeterministicRand("reject-composite-n")}
	_, err := solver.Solve(dlogtest.Nat(9), dlogtest.Nat(3), dlogtest.Nat(16), dlogtest.Nat(4))
	require.ErrorIs(t, err, dlog.InvalidInput)
}

func TestIndexCalculusRejectsCompositeOrder(t *testing.T) {
	// 41 is prime, but the caller has passed a composite order.
	solver := dlog.IndexCalculus{Rand: dlogtest.DeterministicRand("reject-composite-order")}
	_, err := solver.Solve(dlogtest.Nat(14), dlogtest.Nat(7), dlogtest.Nat(41), dlogtest.Nat(40))
	require.ErrorIs(t, err, dlog.InvalidInput)
}

func TestIndexCalculusRejectsOrderMismatch(t *testing.T) {
	// 2 has order 11 mod 23, not the order 5 claimed here (5 does not
	// divide 11, so no element of order 5 can be reached from 2 at all).
	solver := dlog.IndexCalculus{Rand: dlogtest.DeterministicRand("reject-order-mismatch")}
	_, err := solver.Solve(dlogtest.Nat(1), dlogtest.Nat(2), dlogtest.Nat(23), dlogtest.Nat(5))
	require.ErrorIs(t, err, dlog.OrderMismatch)
}

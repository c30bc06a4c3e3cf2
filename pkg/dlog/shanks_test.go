package dlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DiscreteLog/internal/dlogtest"
	"DiscreteLog/pkg/dlog"
)

func TestShanksAgainstVectors(t *testing.T) {
	for _, v := range dlogtest.Vectors {
		v := v
		t.Run(v.Name, func(t *testing.T) {
			x, err := (dlog.Shanks{}).Solve(dlogtest.Nat(v.A), dlogtest.Nat(v.B), dlogtest.Nat(v.N), dlogtest.Nat(v.Order))
			require.NoError(t, err)
			require.Equal(t, dlogtest.Nat(v.X), x)
		})
	}
}

func TestShanksPrimitiveRootMod31(t *testing.T) {
	// 3 is a primitive root mod 31 (order 30); 3^17 = 22 (mod 31).
	got, err := (dlog.Shanks{}).Solve(dlogtest.Nat(22), dlogtest.Nat(3), dlogtest.Nat(31), dlogtest.Nat(30))
	require.NoError(t, err)
	require.Equal(t, dlogtest.Nat(17), got)
}

func TestShanksRejectsOrderMismatch(t *testing.T) {
	_, err := (dlog.Shanks{}).Solve(dlogtest.Nat(1), dlogtest.Nat(3), dlogtest.Nat(31), dlogtest.Nat(7))
	require.ErrorIs(t, err, dlog.OrderMismatch)
}

package dlog

import "DiscreteLog/pkg/BigInt"

// TrialMul solves the discrete log by exhaustive search: it is the
// fallback the dispatcher reaches for when the group order is too small
// for the machinery of the other algorithms to pay for itself.
type TrialMul struct{}

// Solve iterates y <- 1, b, b^2, ... until y == a or order steps have
// elapsed.
func (TrialMul) Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	y := BigInt.New().SetInt64(1)
	x := BigInt.New().SetInt64(0)
	one := BigInt.New().SetInt64(1)

	for x.Cmp(order) < 0 {
		if y.Cmp(a) == 0 {
			return x.Clone(), nil
		}
		y = BigInt.New().ModMul(y, b, n)
		x = BigInt.New().Add(x, one)
	}
	return nil, NoSolution
}

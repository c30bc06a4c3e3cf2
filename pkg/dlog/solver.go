package dlog

import "DiscreteLog/pkg/BigInt"

// Solver is the capability every discrete-log algorithm implements,
// letting the Dispatcher hold a uniform variant of them instead of a type
// switch. Every Solve implementation normalizes its own inputs via
// normalizeAndVerifyOrder rather than trusting a caller (the Dispatcher or
// otherwise) to have done so already.
type Solver interface {
	Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error)
}

// normalizeAndVerifyOrder reduces a and b into [0, n) and confirms that
// order actually annihilates b, i.e. b^order = 1 (mod n). Every algorithm
// calls this first, so each one independently rejects a bogus order with
// OrderMismatch and tolerates an unreduced a or b, regardless of whether
// it is reached through the Dispatcher or invoked directly.
func normalizeAndVerifyOrder(a, b, n, order *BigInt.Nat) (ra, rb *BigInt.Nat, err error) {
	ra = BigInt.New().Mod(a, n)
	rb = BigInt.New().Mod(b, n)
	one := BigInt.New().SetInt64(1)
	if BigInt.New().Exp(rb, order, n).Cmp(one) != 0 {
		return nil, nil, OrderMismatch
	}
	return ra, rb, nil
}

package numtheory

import (
	"io"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/math/sample"
)

// trialDivisionBound is how far the small-prime sieve searches before
// handing the remaining cofactor to Pollard's rho.
const trialDivisionBound = 1 << 16

// pollardRhoFactorAttempts bounds how many restarts Factor gives Pollard's
// rho, with a different pseudo-random polynomial constant each time,
// before giving up on a stubborn composite cofactor.
const pollardRhoFactorAttempts = 40

// Factor returns the complete prime factorization of n, which must be
// positive. Determinism is not required by the algorithm (Pollard's rho is
// randomized internally), but correctness is: every returned key passes
// ProbablyPrime, and Product() reconstructs n exactly.
//
// rand supplies entropy for the Pollard's rho fallback; pass a
// deterministic reader (see pkg/math/sample.DeterministicReader) for
// reproducible tests.
func Factor(rand io.Reader, n *BigInt.Nat) (*Factorization, error) {
	f := NewFactorization()
	remaining := n.Clone()

	one := BigInt.New().SetInt64(1)
	two := BigInt.New().SetInt64(2)
	if remaining.Cmp(one) <= 0 {
		return f, nil
	}

	for _, p := range sample.Primes(trialDivisionBound) {
		if remaining.Cmp(one) == 0 {
			return f, nil
		}
		prime := BigInt.New().SetUint64(uint64(p))
		if prime.Cmp(remaining) > 0 {
			break
		}
		exp := 0
		for {
			q, r := BigInt.New().DivMod(remaining, prime)
			if !r.IsZero() {
				break
			}
			remaining = q
			exp++
		}
		if exp > 0 {
			f.add(prime, exp)
		}
	}

	if err := factorRemaining(rand, f, remaining, two); err != nil {
		return nil, err
	}
	return f, nil
}

// factorRemaining recursively splits n (which has no factors below
// trialDivisionBound) using Pollard's rho, terminating each branch once
// ProbablyPrime confirms a factor is prime.
func factorRemaining(rand io.Reader, f *Factorization, n, two *BigInt.Nat) error {
	one := BigInt.New().SetInt64(1)
	if n.Cmp(one) == 0 {
		return nil
	}
	if n.ProbablyPrime(20) {
		f.add(n, 1)
		return nil
	}

	d, err := pollardRhoSplit(rand, n)
	if err != nil {
		return err
	}
	q, _ := BigInt.New().DivMod(n, d)
	if err := factorRemaining(rand, f, d, two); err != nil {
		return err
	}
	return factorRemaining(rand, f, q, two)
}

// ErrFactorizationFailed is returned when Pollard's rho cannot split a
// composite within its retry budget. In practice this only happens for
// adversarially chosen or extremely large semiprimes.
var ErrFactorizationFailed = errFactorizationFailed{}

type errFactorizationFailed struct{}

func (errFactorizationFailed) Error() string {
	return "numtheory: Pollard's rho factorization exhausted its retry budget"
}

// pollardRhoSplit finds one non-trivial factor of the composite n using
// Floyd cycle detection over x -> x^2+c mod n, retrying with a fresh c on
// failure.
func pollardRhoSplit(rand io.Reader, n *BigInt.Nat) (*BigInt.Nat, error) {
	one := BigInt.New().SetInt64(1)
	nMinus3 := BigInt.New().Sub(n, BigInt.New().SetInt64(3))

	for attempt := 0; attempt < pollardRhoFactorAttempts; attempt++ {
		c, err := sample.Range(rand, one, nMinus3)
		if err != nil {
			return nil, err
		}
		if d, ok := pollardRhoTry(n, c); ok {
			return d, nil
		}
	}
	return nil, ErrFactorizationFailed
}

func pollardRhoTry(n, c *BigInt.Nat) (*BigInt.Nat, bool) {
	f := func(x *BigInt.Nat) *BigInt.Nat {
		return BigInt.New().ModAdd(BigInt.New().ModMul(x, x, n), c, n)
	}

	x := BigInt.New().SetInt64(2)
	y := BigInt.New().SetInt64(2)
	d := BigInt.New().SetInt64(1)

	for d.IsOne() {
		x = f(x)
		y = f(f(y))
		diff := BigInt.New().Sub(x, y)
		if diff.Sign() < 0 {
			diff = diff.Add(diff, n)
		}
		d = BigInt.GCD(diff, n)
	}
	if d.Cmp(n) == 0 {
		return nil, false
	}
	return d, true
}

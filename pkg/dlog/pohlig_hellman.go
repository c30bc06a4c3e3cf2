package dlog

import (
	"github.com/sirupsen/logrus"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/numtheory"
)

// PohligHellman solves the discrete log in a group of composite order by
// splitting it into one sub-problem per prime power q^e dividing order,
// solving each prime-power sub-problem by lifting digit-by-digit through a
// prime-order subgroup, then recombining the partial logs via the Chinese
// Remainder Theorem.
type PohligHellman struct {
	// Dispatcher supplies the prime-order solver used at each lifting
	// step, and the entropy source for factoring order. A zero-value
	// PohligHellman falls back to DefaultDispatcher(), which is safe
	// since every prime q it dispatches on is strictly smaller than the
	// original composite order.
	Dispatcher *Dispatcher
}

func (ph PohligHellman) dispatcher() *Dispatcher {
	if ph.Dispatcher != nil {
		return ph.Dispatcher
	}
	return DefaultDispatcher()
}

// Solve factors order into prime powers q1^e1 * ... * qk^ek, solves
// b^x = a (mod n) within the subgroup of order q_i^e_i for each i via
// solvePrimePower, and recombines the k partial results with CRT.
func (ph PohligHellman) Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	d := ph.dispatcher()
	orderFactors, err := numtheory.Factor(d.rand(), order)
	if err != nil {
		return nil, wrapCause(AlgorithmFailed, err)
	}

	entries := orderFactors.Entries()
	logrus.WithFields(logrus.Fields{"factors": len(entries)}).Debug("dlog: pohlig-hellman splitting into prime-power subgroups")

	residues := make([]*BigInt.Nat, len(entries))
	moduli := make([]*BigInt.Nat, len(entries))

	for i, entry := range entries {
		qe := BigInt.New().Pow(entry.Prime, BigInt.New().SetInt64(int64(entry.Exp)))
		cofactor, r := BigInt.New().DivMod(order, qe)
		if !r.IsZero() {
			return nil, algorithmFailed("order is not the exact product of its reported prime powers")
		}

		aSub := BigInt.New().Exp(a, cofactor, n)
		bSub := BigInt.New().Exp(b, cofactor, n)

		xi, err := ph.solvePrimePower(d, aSub, bSub, n, entry.Prime, entry.Exp, qe)
		if err != nil {
			return nil, err
		}

		residues[i] = xi
		moduli[i] = qe
	}

	x, err := numtheory.CRT(residues, moduli)
	if err != nil {
		return nil, wrapCause(AlgorithmFailed, err)
	}
	return x, nil
}

// solvePrimePower finds x in [0, q^e) with bSub^x = aSub (mod n), given that
// bSub has order exactly q^e, by recovering x one base-q digit at a time:
// each digit is itself a discrete log in the prime-order-q subgroup
// generated by gamma = bSub^(q^(e-1)), which the Dispatcher solves directly
// (TrialMul/Shanks/PollardRho/IndexCalculus, never PohligHellman again,
// since q is prime).
func (ph PohligHellman) solvePrimePower(d *Dispatcher, aSub, bSub, n, q *BigInt.Nat, e int, qe *BigInt.Nat) (*BigInt.Nat, error) {
	gamma := BigInt.New().Exp(bSub, BigInt.New().Pow(q, BigInt.New().SetInt64(int64(e-1))), n)

	x := BigInt.New().SetInt64(0)
	qPow := BigInt.New().SetInt64(1) // q^i, accumulated across iterations
	bInv, err := BigInt.New().ModInverse(bSub, n)
	if err != nil {
		return nil, wrapCause(InvalidInput, err)
	}

	for i := 0; i < e; i++ {
		// exponent = aSub * bSub^-x, raised to q^(e-1-i), lands in the
		// order-q subgroup generated by gamma.
		reduceExp := BigInt.New().Pow(q, BigInt.New().SetInt64(int64(e-1-i)))
		bInvX := BigInt.New().Exp(bInv, x, n)
		inner := BigInt.New().ModMul(aSub, bInvX, n)
		target := BigInt.New().Exp(inner, reduceExp, n)

		solver, _ := d.choose(n, q)
		digit, err := solver.Solve(target, gamma, n, q)
		if err != nil {
			return nil, err
		}

		x = BigInt.New().Add(x, BigInt.New().Mul(digit, qPow))
		qPow = BigInt.New().Mul(qPow, q)
	}

	return BigInt.New().Mod(x, qe), nil
}

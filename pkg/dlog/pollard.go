package dlog

import (
	"crypto/rand"
	"io"

	"github.com/sirupsen/logrus"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/math/sample"
)

// PollardRho solves the discrete log with a randomized walk that detects a
// cycle with Floyd's tortoise-and-hare, needing only O(log order) memory
// instead of Shanks' O(sqrt(order)). The dispatcher reaches for it once
// order is too large for Shanks' table to be affordable.
type PollardRho struct {
	// Rand supplies entropy for the walk's random restarts. Defaults to
	// crypto/rand.Reader; tests inject a deterministic reader for
	// reproducibility.
	Rand io.Reader
	// Retries bounds how many times the walk is reseeded with a fresh
	// random starting point after a degenerate collision or a run that
	// exceeds its step budget. Defaults to 10.
	Retries int
	// StepFactor scales the per-attempt iteration budget: C*sqrt(order).
	// Defaults to 20.
	StepFactor int64
	// MaxSteps caps the per-attempt iteration budget outright, so a huge
	// order cannot make a single attempt run unboundedly long. Defaults
	// to 1<<22.
	MaxSteps int64
}

func (p PollardRho) rand() io.Reader {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.Reader
}

func (p PollardRho) retries() int {
	if p.Retries > 0 {
		return p.Retries
	}
	return 10
}

func (p PollardRho) stepFactor() int64 {
	if p.StepFactor > 0 {
		return p.StepFactor
	}
	return 20
}

func (p PollardRho) maxSteps() int64 {
	if p.MaxSteps > 0 {
		return p.MaxSteps
	}
	return 1 << 22
}

type rhoState struct {
	x, alpha, beta *BigInt.Nat
}

// step advances one triple (x, alpha, beta) by one partitioned move,
// maintaining the invariant x = b^alpha * a^beta (mod n), partitioning by
// x mod 3 into three update rules.
func step(s rhoState, a, b, n, order *BigInt.Nat) rhoState {
	three := BigInt.New().SetInt64(3)
	one := BigInt.New().SetInt64(1)
	class := BigInt.New().Mod(s.x, three)

	switch {
	case class.IsZero():
		return rhoState{
			x:     BigInt.New().ModMul(s.x, b, n),
			alpha: BigInt.New().ModAdd(s.alpha, one, order),
			beta:  s.beta,
		}
	case class.Cmp(one) == 0:
		return rhoState{
			x:     BigInt.New().ModMul(s.x, s.x, n),
			alpha: BigInt.New().ModAdd(s.alpha, s.alpha, order),
			beta:  BigInt.New().ModAdd(s.beta, s.beta, order),
		}
	default:
		return rhoState{
			x:     BigInt.New().ModMul(s.x, a, n),
			alpha: s.alpha,
			beta:  BigInt.New().ModAdd(s.beta, one, order),
		}
	}
}

// Solve runs the randomized walk and collision resolution, including the
// gcd(r, order) > 1 lifting case.
func (p PollardRho) Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	rnd := p.rand()
	maxSteps := boundedStepCount(order, p.stepFactor(), p.maxSteps())

	for attempt := 0; attempt < p.retries(); attempt++ {
		x, err := p.seedAndWalk(rnd, a, b, n, order, maxSteps)
		if err != nil {
			return nil, err
		}
		if x != nil {
			return x, nil
		}
		logrus.WithFields(logrus.Fields{"attempt": attempt}).Debug("dlog: pollard rho collision did not verify, restarting")
	}
	return nil, AlgorithmFailed
}

// seedAndWalk runs a single Pollard rho attempt from a fresh random seed,
// returning (x, nil) on a verified solution, (nil, nil) if this attempt's
// collision was degenerate or unverifiable (caller should retry), or a
// non-nil error for a hard failure.
func (p PollardRho) seedAndWalk(rnd io.Reader, a, b, n, order *BigInt.Nat, maxSteps int64) (*BigInt.Nat, error) {
	alpha0, err := sample.ModN(rnd, order)
	if err != nil {
		return nil, wrapCause(AlgorithmFailed, err)
	}
	beta0, err := sample.ModN(rnd, order)
	if err != nil {
		return nil, wrapCause(AlgorithmFailed, err)
	}
	x0 := BigInt.New().ModMul(BigInt.New().Exp(b, alpha0, n), BigInt.New().Exp(a, beta0, n), n)

	slow := rhoState{x: x0, alpha: alpha0, beta: beta0}
	fast := rhoState{x: x0.Clone(), alpha: alpha0.Clone(), beta: beta0.Clone()}

	for i := int64(0); i < maxSteps; i++ {
		slow = step(slow, a, b, n, order)
		fast = step(step(fast, a, b, n, order), a, b, n, order)
		if slow.x.Eq(fast.x) {
			return resolveCollision(slow, fast, a, b, n, order)
		}
	}
	return nil, nil
}

// resolveCollision turns a Floyd collision into a candidate discrete log,
// handling the case where gcd(r, order) > 1 by testing every lift.
func resolveCollision(slow, fast rhoState, a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	e := BigInt.New().ModSub(slow.alpha, fast.alpha, order)
	r := BigInt.New().ModSub(fast.beta, slow.beta, order)
	if r.IsZero() {
		return nil, nil // degenerate: no information, ask caller to restart
	}

	g := BigInt.GCD(r, order)
	if g.IsOne() {
		rInv, err := BigInt.New().ModInverse(r, order)
		if err != nil {
			return nil, nil
		}
		x := BigInt.New().ModMul(e, rInv, order)
		if verifies(x, a, b, n) {
			return x, nil
		}
		return nil, nil
	}

	reducedOrder, _ := BigInt.New().DivMod(order, g)
	eOverG, eRem := BigInt.New().DivMod(e, g)
	if !eRem.IsZero() {
		return nil, nil // e not divisible by g: collision carries no solution
	}
	rOverG, _ := BigInt.New().DivMod(r, g)
	rOverGInv, err := BigInt.New().ModInverse(rOverG, reducedOrder)
	if err != nil {
		return nil, nil
	}
	x0 := BigInt.New().ModMul(eOverG, rOverGInv, reducedOrder)

	gInt, ok := g.Int64()
	if !ok {
		return nil, algorithmFailed("gcd lift has too many candidates to enumerate")
	}
	for k := int64(0); k < gInt; k++ {
		candidate := BigInt.New().Add(x0, BigInt.New().Mul(BigInt.New().SetInt64(k), reducedOrder))
		candidate = BigInt.New().Mod(candidate, order)
		if verifies(candidate, a, b, n) {
			return candidate, nil
		}
	}
	return nil, nil
}

func verifies(x, a, b, n *BigInt.Nat) bool {
	return BigInt.New().Exp(b, x, n).Cmp(a) == 0
}

// boundedStepCount computes C*sqrt(order), clamped to [1, maxSteps].
func boundedStepCount(order *BigInt.Nat, factor, maxSteps int64) int64 {
	sqrtOrder := BigInt.New().Sqrt(order)
	bound, ok := sqrtOrder.Int64()
	if !ok || bound <= 0 {
		return maxSteps
	}
	steps := bound * factor
	if steps <= 0 || steps > maxSteps {
		return maxSteps
	}
	return steps
}

package dlog

import (
	"crypto/rand"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/numtheory"
)

// Dispatcher picks among the algorithm family and runs it, after validating
// and normalizing its inputs. The zero value is not ready to use; build one
// with DefaultDispatcher or NewDispatcher(opts...).
type Dispatcher struct {
	rnd io.Reader

	// smallOrderThreshold: orders below this use TrialMul outright.
	// Defaults to 1000.
	smallOrderThreshold int64
	// shanksOrderThreshold: prime orders below this (and at or above
	// smallOrderThreshold) use Shanks. Defaults to 10^12.
	shanksOrderThreshold int64
	// indexCalculusMargin is subtracted from log(order) before comparing
	// against 4*sqrt(log n * log log n), the index calculus gate.
	// Defaults to 10.
	indexCalculusMargin float64

	retries             int
	pollardStepFactor   int64
}

// Option configures a Dispatcher built with NewDispatcher.
type Option func(*Dispatcher)

// WithRand overrides the entropy source used by every randomized algorithm
// the dispatcher runs (PollardRho, IndexCalculus). Tests pass
// dlogtest.DeterministicRand for reproducibility; production callers
// normally leave this as the crypto/rand.Reader default.
func WithRand(r io.Reader) Option {
	return func(d *Dispatcher) { d.rnd = r }
}

// WithRetries overrides PollardRho's restart budget (see PollardRho.Retries).
func WithRetries(n int) Option {
	return func(d *Dispatcher) { d.retries = n }
}

// WithPollardIterationFactor overrides PollardRho's per-attempt step budget
// multiplier (see PollardRho.StepFactor).
func WithPollardIterationFactor(factor int64) Option {
	return func(d *Dispatcher) { d.pollardStepFactor = factor }
}

// NewDispatcher builds a Dispatcher with the given options layered over the
// defaults used by DefaultDispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		rnd:                  rand.Reader,
		smallOrderThreshold:  1000,
		shanksOrderThreshold: 1_000_000_000_000,
		indexCalculusMargin:  10,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultDispatcher returns a Dispatcher configured with the package
// defaults and crypto/rand.Reader as its entropy source.
func DefaultDispatcher() *Dispatcher {
	return NewDispatcher()
}

func (d *Dispatcher) rand() io.Reader {
	if d.rnd != nil {
		return d.rnd
	}
	return rand.Reader
}

// DiscreteLog computes the least x >= 0 with b^x = a (mod n), using
// DefaultDispatcher. It is the package-level convenience form of
// Dispatcher.Solve when no caller-supplied order or tuning is needed.
func DiscreteLog(a, b, n *BigInt.Nat) (*BigInt.Nat, error) {
	return DefaultDispatcher().Solve(a, b, n)
}

// DiscreteLogWithOrder is DiscreteLog for a caller who already knows the
// multiplicative order of b mod n, skipping the dispatcher's own order
// computation.
func DiscreteLogWithOrder(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	return DefaultDispatcher().SolveWithOrder(a, b, n, order)
}

// Solve computes the least x >= 0 with b^x = a (mod n). It first computes
// the multiplicative order of b mod n via numtheory.Order; callers who
// already know it should use SolveWithOrder instead to skip that work.
func (d *Dispatcher) Solve(a, b, n *BigInt.Nat) (*BigInt.Nat, error) {
	reducedB := BigInt.New().Mod(b, n)
	order, err := numtheory.Order(d.rand(), reducedB, n)
	if err != nil {
		return nil, wrapCause(InvalidInput, err)
	}
	return d.solveWithOrder(a, reducedB, n, order)
}

// SolveWithOrder is Solve for a caller-supplied order, which is verified to
// actually annihilate b before any algorithm runs.
func (d *Dispatcher) SolveWithOrder(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	return d.solveWithOrder(a, b, n, order)
}

func (d *Dispatcher) solveWithOrder(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	two := BigInt.New().SetInt64(2)
	if n.Cmp(two) < 0 {
		return nil, invalidInput("n must be at least 2")
	}
	if order.Sign() <= 0 {
		return nil, invalidInput("order must be positive")
	}

	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	one := BigInt.New().SetInt64(1)
	if a.Cmp(one) == 0 {
		return BigInt.New().SetInt64(0), nil
	}
	if a.Cmp(b) == 0 {
		return BigInt.New().SetInt64(1), nil
	}

	solver, ruleName := d.choose(n, order)
	logrus.WithFields(logrus.Fields{"rule": ruleName, "order_bits": order.BitLen()}).Debug("dlog: dispatcher selected algorithm")
	return solver.Solve(a, b, n, order)
}

// choose picks which algorithm handles (n, order), from small-order
// trial multiplication up through composite-order Pohlig-Hellman.
func (d *Dispatcher) choose(n, order *BigInt.Nat) (Solver, string) {
	smallThreshold := BigInt.New().SetInt64(d.smallOrderThreshold)
	if order.Cmp(smallThreshold) < 0 {
		return TrialMul{}, "small order: trial multiplication"
	}

	orderIsPrime := numtheory.IsPrime(order)
	if orderIsPrime && numtheory.IsPrime(n) && d.qualifiesForIndexCalculus(n, order) {
		return IndexCalculus{Rand: d.rand()}, "prime order, prime modulus, subexponential regime: index calculus"
	}

	shanksThreshold := BigInt.New().SetInt64(d.shanksOrderThreshold)
	if orderIsPrime && order.Cmp(shanksThreshold) < 0 {
		return Shanks{}, "prime order below shanks threshold: baby-step giant-step"
	}

	if orderIsPrime {
		return PollardRho{Rand: d.rand(), Retries: d.retries, StepFactor: d.pollardStepFactor}, "prime order: pollard rho"
	}

	return PohligHellman{Dispatcher: d}, "composite order: pohlig-hellman"
}

// qualifiesForIndexCalculus is the subexponential crossover test:
// 4*sqrt(log n * log log n) < log(order) - indexCalculusMargin.
func (d *Dispatcher) qualifiesForIndexCalculus(n, order *BigInt.Nat) bool {
	logN := math.Log(n.Float64())
	if logN <= 1 {
		return false
	}
	logLogN := math.Log(logN)
	if logLogN <= 0 {
		return false
	}
	lhs := 4 * math.Sqrt(logN*logLogN)
	rhs := math.Log(order.Float64()) - d.indexCalculusMargin
	return lhs < rhs
}

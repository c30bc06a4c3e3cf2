package dlog

import (
	"crypto/rand"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"DiscreteLog/pkg/BigInt"
	"DiscreteLog/pkg/math/sample"
	"DiscreteLog/pkg/numtheory"
)

// IndexCalculus solves the discrete log subexponentially by collecting
// relations among small primes (a "factor base") and solving a linear
// system over Z/orderZ. It requires n and order both prime, and only pays
// off for very large prime orders — the dispatcher gates on exactly that.
type IndexCalculus struct {
	// Rand supplies entropy for sampling relation exponents. Defaults to
	// crypto/rand.Reader.
	Rand io.Reader
	// RelationSlack is how many more relations than factor-base primes to
	// collect, for redundancy against a singular system. Defaults to 10.
	RelationSlack int
	// MaxRelationTries bounds how many random exponents are sampled while
	// hunting for smooth relations before giving up on a given factor
	// base, scaled relative to its size. Defaults to 200 * size^2.
	MaxRelationTries int
	// FactorBaseGrowthAttempts bounds how many times the factor base is
	// doubled and relation collection retried after the linear system
	// comes out singular. The base's initial size is already sized to
	// make this rare at the orders the dispatcher selects IndexCalculus
	// for; the growth loop exists for the subgroups where b's span
	// happens not to cover one of the smaller factor-base primes.
	// Defaults to 6.
	FactorBaseGrowthAttempts int
}

func (ic IndexCalculus) rand() io.Reader {
	if ic.Rand != nil {
		return ic.Rand
	}
	return rand.Reader
}

func (ic IndexCalculus) relationSlack() int {
	if ic.RelationSlack > 0 {
		return ic.RelationSlack
	}
	return 10
}

func (ic IndexCalculus) growthAttempts() int {
	if ic.FactorBaseGrowthAttempts > 0 {
		return ic.FactorBaseGrowthAttempts
	}
	return 6
}

// Solve builds a factor base, collects smooth relations for each of its
// primes, solves the resulting linear system mod order, then finds one
// more relation for a itself to finish the individual log. If a given
// factor base's relations turn out to span a singular system, the base is
// doubled and collection retried, up to FactorBaseGrowthAttempts times.
func (ic IndexCalculus) Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	if !numtheory.IsPrime(n) {
		return nil, invalidInput("index calculus requires a prime modulus n")
	}
	if !numtheory.IsPrime(order) {
		return nil, invalidInput("index calculus requires a prime order")
	}

	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	rnd := ic.rand()
	k := ic.initialFactorBaseSize(n)

	var logs []*BigInt.Nat
	var factorBase []uint32
	for attempt := 0; attempt < ic.growthAttempts(); attempt++ {
		factorBase = sample.Primes(ic.sieveBoundFor(k))
		if len(factorBase) > k {
			factorBase = factorBase[:k]
		}
		if len(factorBase) == 0 {
			return nil, algorithmFailed("factor base is empty for this modulus")
		}

		logrus.WithFields(logrus.Fields{"factor_base_size": len(factorBase), "attempt": attempt}).Debug("dlog: index calculus collecting relations")

		logs, err = ic.collectAndSolve(rnd, b, n, order, factorBase)
		if err == nil {
			break
		}
		k *= 2
	}
	if err != nil {
		return nil, algorithmFailed("could not find a non-singular relation set: " + err.Error())
	}

	return ic.individualLog(rnd, a, b, n, order, factorBase, logs)
}

// collectAndSolve gathers smooth relations for b's powers over factorBase
// and solves the resulting linear system for each factor-base prime's log
// to base b, mod order.
func (ic IndexCalculus) collectAndSolve(rnd io.Reader, b, n, order *BigInt.Nat, factorBase []uint32) ([]*BigInt.Nat, error) {
	maxTries := ic.MaxRelationTries
	if maxTries <= 0 {
		maxTries = 200 * len(factorBase) * len(factorBase)
	}
	need := len(factorBase) + ic.relationSlack()

	relations := make([][]int64, 0, need)
	targets := make([]*BigInt.Nat, 0, need)

	one := BigInt.New().SetInt64(1)
	for tries := 0; len(relations) < need && tries < maxTries; tries++ {
		e, err := sample.Range(rnd, one, order)
		if err != nil {
			return nil, err
		}
		y := BigInt.New().Exp(b, e, n)
		exps, ok := trialDivideSmooth(y, factorBase)
		if !ok {
			continue
		}
		relations = append(relations, exps)
		targets = append(targets, e)
	}
	if len(relations) < len(factorBase) {
		return nil, algorithmFailed("could not collect enough smooth relations")
	}

	return solveLinearSystemModP(relations, targets, order)
}

// individualLog finds a random multiple a*b^s that is smooth over
// factorBase, then reconstructs log_b(a) from the already-solved
// factor-base logs: log_b(a) = (sum of exponent*log) - s (mod order).
func (ic IndexCalculus) individualLog(rnd io.Reader, a, b, n, order *BigInt.Nat, factorBase []uint32, logs []*BigInt.Nat) (*BigInt.Nat, error) {
	maxTries := ic.MaxRelationTries
	if maxTries <= 0 {
		maxTries = 200 * len(factorBase) * len(factorBase)
	}
	one := BigInt.New().SetInt64(1)

	for tries := 0; tries < maxTries; tries++ {
		s, err := sample.Range(rnd, one, order)
		if err != nil {
			return nil, wrapCause(AlgorithmFailed, err)
		}
		z := BigInt.New().ModMul(a, BigInt.New().Exp(b, s, n), n)
		exps, ok := trialDivideSmooth(z, factorBase)
		if !ok {
			continue
		}
		sum := BigInt.New().SetInt64(0)
		for i, exp := range exps {
			if exp == 0 {
				continue
			}
			term := BigInt.New().ModMul(BigInt.New().SetInt64(int64(exp)), logs[i], order)
			sum.ModAdd(sum, term, order)
		}
		x := BigInt.New().ModSub(sum, s, order)
		if verifies(x, a, b, n) {
			return x, nil
		}
	}
	return nil, AlgorithmFailed
}

// initialFactorBaseSize applies the standard subexponential heuristic
// k ~ ceil(exp(0.5*sqrt(log n * log log n))) for the target number of
// factor-base primes.
func (ic IndexCalculus) initialFactorBaseSize(n *BigInt.Nat) int {
	logN := math.Log(n.Float64())
	logLogN := math.Log(logN)
	k := int(math.Ceil(math.Exp(0.5 * math.Sqrt(logN*logLogN))))
	if k < 1 {
		k = 1
	}
	return k
}

// sieveBoundFor seeds the sieve with a smoothness bound guess, growing it
// until at least k primes are available.
func (ic IndexCalculus) sieveBoundFor(k int) uint32 {
	bound := uint32(2 * k)
	for attempt := 0; attempt < 20; attempt++ {
		if len(sample.Primes(bound)) >= k {
			return bound
		}
		bound *= 2
	}
	return bound
}

// trialDivideSmooth attempts to factor y completely over factorBase,
// returning the exponent vector and whether y is fully smooth.
func trialDivideSmooth(y *BigInt.Nat, factorBase []uint32) ([]int64, bool) {
	remaining := y.Clone()
	exps := make([]int64, len(factorBase))
	one := BigInt.New().SetInt64(1)
	for i, p := range factorBase {
		prime := BigInt.New().SetUint64(uint64(p))
		for {
			q, r := BigInt.New().DivMod(remaining, prime)
			if !r.IsZero() {
				break
			}
			remaining = q
			exps[i]++
		}
	}
	return exps, remaining.Cmp(one) == 0
}

// solveLinearSystemModP solves relations * logs = targets (mod p) via
// Gaussian elimination over the field Z/pZ, where p is prime so every
// non-zero pivot is invertible. relations has one row per collected
// relation and one column per factor-base prime; rows may outnumber
// columns, in which case the extra rows are redundant and ignored once a
// full-rank pivot set is found.
//
// A factor-base prime that never divides any collected relation (its
// column is entirely zero) is dropped from the system instead of causing
// a singular-matrix failure: since b's span may be a strict subgroup, some
// small primes in the base can be structurally unreachable from b's
// powers, and their log is never needed because they can equally never
// appear in an individual-log relation for a genuine instance.
func solveLinearSystemModP(relations [][]int64, targets []*BigInt.Nat, p *BigInt.Nat) ([]*BigInt.Nat, error) {
	rows := len(relations)
	fullCols := len(relations[0])

	active := make([]int, 0, fullCols)
	for col := 0; col < fullCols; col++ {
		for r := 0; r < rows; r++ {
			if relations[r][col] != 0 {
				active = append(active, col)
				break
			}
		}
	}
	cols := len(active)

	matrix := make([][]*BigInt.Nat, rows)
	rhs := make([]*BigInt.Nat, rows)
	for i := 0; i < rows; i++ {
		matrix[i] = make([]*BigInt.Nat, cols)
		for j, col := range active {
			matrix[i][j] = BigInt.New().Mod(BigInt.New().SetInt64(relations[i][col]), p)
		}
		rhs[i] = targets[i].Clone()
	}

	pivotRowOf := make([]int, cols)
	for j := range pivotRowOf {
		pivotRowOf[j] = -1
	}

	nextFreeRow := 0
	for col := 0; col < cols && nextFreeRow < rows; col++ {
		pivot := -1
		for r := nextFreeRow; r < rows; r++ {
			if !matrix[r][col].IsZero() {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue // no relation pins this unknown yet; leave it for more relations
		}
		matrix[nextFreeRow], matrix[pivot] = matrix[pivot], matrix[nextFreeRow]
		rhs[nextFreeRow], rhs[pivot] = rhs[pivot], rhs[nextFreeRow]

		inv, err := BigInt.New().ModInverse(matrix[nextFreeRow][col], p)
		if err != nil {
			continue
		}
		for c := col; c < cols; c++ {
			matrix[nextFreeRow][c] = BigInt.New().ModMul(matrix[nextFreeRow][c], inv, p)
		}
		rhs[nextFreeRow] = BigInt.New().ModMul(rhs[nextFreeRow], inv, p)

		for r := 0; r < rows; r++ {
			if r == nextFreeRow {
				continue
			}
			factor := matrix[r][col]
			if factor.IsZero() {
				continue
			}
			for c := col; c < cols; c++ {
				sub := BigInt.New().ModMul(factor, matrix[nextFreeRow][c], p)
				matrix[r][c] = BigInt.New().ModSub(matrix[r][c], sub, p)
			}
			rhs[r] = BigInt.New().ModSub(rhs[r], BigInt.New().ModMul(factor, rhs[nextFreeRow], p), p)
		}
		pivotRowOf[col] = nextFreeRow
		nextFreeRow++
	}

	logs := make([]*BigInt.Nat, fullCols)
	for j := range logs {
		logs[j] = BigInt.New().SetInt64(0)
	}
	for j, row := range pivotRowOf {
		if row == -1 {
			return nil, errSingularSystem
		}
		logs[active[j]] = rhs[row]
	}
	return logs, nil
}

var errSingularSystem = algorithmFailed("relation matrix did not reach full rank")

package dlog

import "DiscreteLog/pkg/BigInt"

// Shanks solves the discrete log with the baby-step giant-step
// meet-in-the-middle algorithm: O(sqrt(order)) time and space. The
// dispatcher only reaches for it when order is small enough (< 10^12 by
// default) that Theta(sqrt(order)) memory is affordable.
type Shanks struct{}

// Solve builds a table of baby steps b^0..b^(m-1) keyed by residue value,
// then walks giant steps a, a*c, a*c^2, ... where c = b^-m, looking each
// one up in the table. On a hash collision the smallest baby-step index
// already stored wins, since the table is insertion-only: a later giant
// step finding an earlier-recorded baby step yields the smallest x
// overall because giant steps are also tried in increasing order.
func (Shanks) Solve(a, b, n, order *BigInt.Nat) (*BigInt.Nat, error) {
	a, b, err := normalizeAndVerifyOrder(a, b, n, order)
	if err != nil {
		return nil, err
	}

	m := BigInt.New().Sqrt(order)
	if BigInt.New().Mul(m, m).Cmp(order) != 0 {
		m = BigInt.New().Add(m, BigInt.New().SetInt64(1))
	}
	mInt, ok := m.Int64()
	if !ok || mInt <= 0 {
		return nil, algorithmFailed("baby-step table size does not fit in memory")
	}

	table := make(map[string]int64, mInt)
	step := BigInt.New().SetInt64(1)
	for i := int64(0); i < mInt; i++ {
		key := step.String()
		if _, exists := table[key]; !exists {
			table[key] = i
		}
		step = BigInt.New().ModMul(step, b, n)
	}

	bm := BigInt.New().Exp(b, m, n)
	c, err := BigInt.New().ModInverse(bm, n)
	if err != nil {
		return nil, wrapCause(InvalidInput, err)
	}

	gamma := a.Clone()
	for j := int64(0); j < mInt; j++ {
		if i, ok := table[gamma.String()]; ok {
			x := BigInt.New().SetInt64(j)
			x.Mul(x, m)
			x.Add(x, BigInt.New().SetInt64(i))
			return x, nil
		}
		gamma = BigInt.New().ModMul(gamma, c, n)
	}
	return nil, NoSolution
}

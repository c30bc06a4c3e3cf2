package numtheory

import (
	"errors"
	"io"

	"DiscreteLog/pkg/BigInt"
)

// ErrNotCoprime is returned by Totient-adjacent order computations when
// gcd(b, n) != 1, so b has no multiplicative order mod n.
var ErrNotCoprime = errors.New("numtheory: b is not invertible mod n")

// IsPrime reports whether n is prime, using a Miller-Rabin test with
// enough rounds that a false positive is negligible for any size this
// module is used at.
func IsPrime(n *BigInt.Nat) bool {
	return n.ProbablyPrime(20)
}

// Totient returns Euler's totient phi(n): the count of integers in [1, n]
// coprime to n, equivalently |(Z/nZ)*|.
func Totient(rand io.Reader, n *BigInt.Nat) (*BigInt.Nat, error) {
	f, err := Factor(rand, n)
	if err != nil {
		return nil, err
	}
	return totientFromFactorization(f), nil
}

func totientFromFactorization(f *Factorization) *BigInt.Nat {
	one := BigInt.New().SetInt64(1)
	out := BigInt.New().SetInt64(1)
	for _, entry := range f.Entries() {
		pMinus1 := BigInt.New().Sub(entry.Prime, one)
		if entry.Exp == 1 {
			out.Mul(out, pMinus1)
			continue
		}
		pPow := BigInt.New().Pow(entry.Prime, BigInt.New().SetInt64(int64(entry.Exp-1)))
		out.Mul(out, pPow)
		out.Mul(out, pMinus1)
	}
	return out
}

// Order returns the multiplicative order of b modulo n: the least k > 0
// with b^k = 1 (mod n). Requires gcd(b, n) = 1.
func Order(rand io.Reader, b, n *BigInt.Nat) (*BigInt.Nat, error) {
	if !b.Coprime(n) {
		return nil, ErrNotCoprime
	}
	phi, err := Factor(rand, n)
	if err != nil {
		return nil, err
	}
	return orderWithTotientFactorization(rand, b, n, phi)
}

// OrderWithFactors returns the multiplicative order of b modulo n, given a
// caller-supplied factorization of n, letting a caller who already
// factored n for another purpose skip refactoring it.
func OrderWithFactors(rand io.Reader, b, n *BigInt.Nat, nFactors *Factorization) (*BigInt.Nat, error) {
	if !b.Coprime(n) {
		return nil, ErrNotCoprime
	}
	return orderWithTotientFactorization(rand, b, n, nFactors)
}

func orderWithTotientFactorization(rand io.Reader, b, n *BigInt.Nat, nFactors *Factorization) (*BigInt.Nat, error) {
	phi := totientFromFactorization(nFactors)
	phiFactors, err := Factor(rand, phi)
	if err != nil {
		return nil, err
	}

	k := phi.Clone()
	reduced := BigInt.New().Mod(b, n)
	one := BigInt.New().SetInt64(1)
	for _, entry := range phiFactors.Entries() {
		for {
			candidate, r := BigInt.New().DivMod(k, entry.Prime)
			if !r.IsZero() {
				break
			}
			if BigInt.New().Exp(reduced, candidate, n).Cmp(one) != 0 {
				break
			}
			k = candidate
		}
	}
	return k, nil
}

// CRT combines residues modulo pairwise-coprime moduli into a single
// residue modulo their product, via the Chinese Remainder Theorem.
func CRT(residues, moduli []*BigInt.Nat) (*BigInt.Nat, error) {
	if len(residues) == 0 || len(residues) != len(moduli) {
		return nil, errors.New("numtheory: CRT requires equal non-empty residues and moduli")
	}

	product := BigInt.New().SetInt64(1)
	for _, m := range moduli {
		product.Mul(product, m)
	}

	sum := BigInt.New().SetInt64(0)
	for i := range residues {
		partial, _ := BigInt.New().DivMod(product, moduli[i])
		inv, err := BigInt.New().ModInverse(partial, moduli[i])
		if err != nil {
			return nil, errors.New("numtheory: CRT moduli are not pairwise coprime")
		}
		term := BigInt.New().ModMul(residues[i], inv, product)
		term.ModMul(term, partial, product)
		sum.ModAdd(sum, term, product)
	}
	return sum, nil
}

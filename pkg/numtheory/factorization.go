// Package numtheory implements the number-theory helpers the discrete-log
// algorithms are built on: complete factorization, primality testing,
// Euler's totient, multiplicative order, and the Chinese Remainder
// Theorem.
package numtheory

import (
	"github.com/fxamacker/cbor/v2"

	"DiscreteLog/pkg/BigInt"
)

// Factorization is an unordered mapping from prime p to positive exponent
// e, representing n = prod(p^e). Factor only records prime keys with
// exponents of at least 1; UnmarshalBinary stores the decoded map as is,
// without re-checking either property.
type Factorization struct {
	exponents map[string]int
}

// NewFactorization returns an empty factorization, i.e. the factorization
// of 1.
func NewFactorization() *Factorization {
	return &Factorization{exponents: map[string]int{}}
}

// Entry is one (prime, exponent) pair of a Factorization.
type Entry struct {
	Prime *BigInt.Nat
	Exp   int
}

// add records e additional occurrences of prime p. p is trusted to be
// prime; callers within this package are responsible for that invariant.
func (f *Factorization) add(p *BigInt.Nat, e int) {
	if e <= 0 {
		return
	}
	key := p.String()
	f.exponents[key] += e
}

// Entries returns every (prime, exponent) pair. Order is unspecified.
func (f *Factorization) Entries() []Entry {
	out := make([]Entry, 0, len(f.exponents))
	for key, e := range f.exponents {
		p, ok := BigInt.New().SetString(key, 10)
		if !ok {
			continue // unreachable: keys are always written by add() as decimal
		}
		out = append(out, Entry{Prime: p, Exp: e})
	}
	return out
}

// Exponent returns the exponent of p in the factorization, or 0 if p does
// not divide the represented integer.
func (f *Factorization) Exponent(p *BigInt.Nat) int {
	return f.exponents[p.String()]
}

// Len returns the number of distinct prime factors.
func (f *Factorization) Len() int {
	return len(f.exponents)
}

// Product reconstructs prod(p^e) as a Nat.
func (f *Factorization) Product() *BigInt.Nat {
	out := BigInt.New().SetInt64(1)
	for _, entry := range f.Entries() {
		pe := BigInt.New().Pow(entry.Prime, BigInt.New().SetInt64(int64(entry.Exp)))
		out.Mul(out, pe)
	}
	return out
}

// binaryForm is the wire shape used for CBOR (de)serialization: a map from
// the decimal string of each prime to its exponent, mirroring the
// unordered-map data model directly.
type binaryForm map[string]int

// MarshalBinary implements encoding.BinaryMarshaler using CBOR.
func (f *Factorization) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(binaryForm(f.exponents))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Factorization) UnmarshalBinary(data []byte) error {
	var bf binaryForm
	if err := cbor.Unmarshal(data, &bf); err != nil {
		return err
	}
	f.exponents = map[string]int(bf)
	return nil
}

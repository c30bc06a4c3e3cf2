// Package sample provides the random-sampling and small-prime sieving
// helpers shared by the number-theory and discrete-log packages: uniform
// sampling in Z_n, a sieve of small primes (used both for trial-division
// factoring and to build index calculus factor bases), and a deterministic
// io.Reader for reproducible tests of the randomized algorithms.
package sample

import (
	"io"
	"math"
	"sync"

	"golang.org/x/crypto/sha3"

	"DiscreteLog/pkg/BigInt"
)

// ModN samples a uniformly distributed element of Z_n, i.e. a value in
// [0, n).
func ModN(rand io.Reader, n *BigInt.Nat) (*BigInt.Nat, error) {
	return BigInt.Random(rand, n)
}

// Range samples a uniformly distributed value in [lo, hi).
func Range(rand io.Reader, lo, hi *BigInt.Nat) (*BigInt.Nat, error) {
	return BigInt.RandomRange(rand, lo, hi)
}

// Primes returns every prime strictly below bound, computed with a sieve
// of Eratosthenes. Results for a given bound are cached since index
// calculus and trial-division factoring both reuse the same small-prime
// table repeatedly.
func Primes(bound uint32) []uint32 {
	sieveCacheMu.Lock()
	defer sieveCacheMu.Unlock()
	if cached, ok := sieveCache[bound]; ok {
		return cached
	}
	out := sieve(bound)
	sieveCache[bound] = out
	return out
}

var (
	sieveCacheMu sync.Mutex
	sieveCache   = map[uint32][]uint32{}
)

func sieve(bound uint32) []uint32 {
	if bound < 2 {
		return nil
	}
	isComposite := make([]bool, bound)
	for p := uint32(2); p*p < bound; p++ {
		if isComposite[p] {
			continue
		}
		for i := p * p; i < bound; i += p {
			isComposite[i] = true
		}
	}
	nF := float64(bound)
	out := make([]uint32, 0, int(nF/math.Log(nF))+8)
	for p := uint32(2); p < bound; p++ {
		if !isComposite[p] {
			out = append(out, p)
		}
	}
	return out
}

// DeterministicReader returns an io.Reader producing a reproducible stream
// of pseudorandom bytes derived from seed via SHAKE256, an extendable
// output function. Passed to PollardRho or IndexCalculus in place of
// crypto/rand.Reader, it makes their randomized search reproducible for
// tests without weakening the production default.
func DeterministicReader(seed []byte) io.Reader {
	xof := sha3.NewShake256()
	_, _ = xof.Write(seed)
	return xof
}

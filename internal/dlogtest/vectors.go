// Package dlogtest holds fixtures shared across pkg/dlog's _test.go files:
// worked discrete-log vectors and a deterministic entropy source, so every
// algorithm's tests exercise the same ground truth instead of each
// reinventing its own small examples.
package dlogtest

import (
	"io"

	"golang.org/x/crypto/sha3"

	"DiscreteLog/pkg/BigInt"
)

// Vector is one worked discrete-log instance: b^X = A (mod N), with the
// multiplicative order of B mod N given explicitly so algorithm tests can
// call a Solver directly without re-deriving it.
type Vector struct {
	Name  string
	A, B, N, Order, X int64
}

// Vectors are small, hand-verified discrete-log instances spanning prime
// and composite moduli, prime-power orders (4, 16) and orders with two
// distinct prime factors (22, 40), and the trivial cases (X=0, X=1) every
// algorithm must handle correctly. None of them has a prime order.
var Vectors = []Vector{
	{Name: "trivial identity", A: 1, B: 5, N: 17, Order: 16, X: 0},
	{Name: "trivial one-step", A: 5, B: 5, N: 17, Order: 16, X: 1},
	{Name: "small prime modulus", A: 15, B: 3, N: 17, Order: 16, X: 6},
	{Name: "primitive root mod 41", A: 14, B: 7, N: 41, Order: 40, X: 15},
	{Name: "prime-power order 4 mod 16", A: 9, B: 3, N: 16, Order: 4, X: 2},
	{Name: "semiprime order 22 mod 23", A: 11, B: 5, N: 23, Order: 22, X: 9},
}

// Nat converts an int64 vector field to a *BigInt.Nat.
func Nat(x int64) *BigInt.Nat {
	return BigInt.New().SetInt64(x)
}

// DeterministicRand returns a reproducible entropy source for a named test
// case, so randomized algorithms (PollardRho, IndexCalculus) produce the
// same walk across runs without weakening the production crypto/rand
// default anywhere else.
func DeterministicRand(seed string) io.Reader {
	xof := sha3.NewShake256()
	_, _ = xof.Write([]byte(seed))
	return xof
}

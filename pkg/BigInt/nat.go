// Package BigInt is the arbitrary-precision integer facade used by every
// number-theory and discrete-log routine in this module. All algorithmic
// code goes through Nat instead of reaching for math/big directly, so the
// backend can be swapped without touching the algorithms.
package BigInt

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Nat wraps a math/big.Int and carries the arithmetic the discrete-log
// algorithms need: modular exponentiation, modular inverse, gcd,
// primality testing, integer square root, and uniform random sampling.
//
// The zero value holds 0 and is ready to use: every method allocates the
// underlying big.Int lazily on first use.
type Nat struct {
	v *big.Int
}

func New() *Nat {
	return &Nat{v: new(big.Int)}
}

func (z *Nat) ensure() *big.Int {
	if z.v == nil {
		z.v = new(big.Int)
	}
	return z.v
}

// SetInt64 sets z to x and returns z.
func (z *Nat) SetInt64(x int64) *Nat {
	z.ensure().SetInt64(x)
	return z
}

// SetUint64 sets z to x and returns z.
func (z *Nat) SetUint64(x uint64) *Nat {
	z.ensure().SetUint64(x)
	return z
}

// SetBytes interprets buf as the big-endian encoding of an unsigned
// integer, sets z to that value, and returns z.
func (z *Nat) SetBytes(buf []byte) *Nat {
	z.ensure().SetBytes(buf)
	return z
}

// SetString sets z to the value of s in the given base and returns z and
// true on success, or nil and false if s could not be parsed.
func (z *Nat) SetString(s string, base int) (*Nat, bool) {
	_, ok := z.ensure().SetString(s, base)
	if !ok {
		return nil, false
	}
	return z, true
}

// SetBig sets z to a copy of x and returns z.
func (z *Nat) SetBig(x *big.Int) *Nat {
	z.ensure().Set(x)
	return z
}

// SetNat sets z to a copy of x and returns z.
func (z *Nat) SetNat(x *Nat) *Nat {
	z.ensure().Set(x.ensure())
	return z
}

// Big returns a copy of the value held by z as a math/big.Int. Mutating
// the result never affects z.
func (z *Nat) Big() *big.Int {
	return new(big.Int).Set(z.ensure())
}

// Clone returns a Nat holding an independent copy of z's value.
func (z *Nat) Clone() *Nat {
	return New().SetNat(z)
}

// Bytes returns the big-endian encoding of z's absolute value.
func (z *Nat) Bytes() []byte {
	return z.ensure().Bytes()
}

// BitLen returns the length of z's absolute value in bits. BitLen(0) == 0.
func (z *Nat) BitLen() int {
	return z.ensure().BitLen()
}

// Sign returns -1, 0, or +1 depending on whether z is negative, zero, or
// positive.
func (z *Nat) Sign() int {
	return z.ensure().Sign()
}

// IsZero reports whether z == 0.
func (z *Nat) IsZero() bool {
	return z.ensure().Sign() == 0
}

// IsOne reports whether z == 1.
func (z *Nat) IsOne() bool {
	return z.ensure().Cmp(big.NewInt(1)) == 0
}

// String returns the base-10 representation of z.
func (z *Nat) String() string {
	return z.ensure().String()
}

// Cmp compares z and y, returning -1, 0, or +1 for z < y, z == y, z > y.
func (z *Nat) Cmp(y *Nat) int {
	return z.ensure().Cmp(y.ensure())
}

// Eq reports whether z and y hold the same value.
func (z *Nat) Eq(y *Nat) bool {
	return z.Cmp(y) == 0
}

// Int64 returns z as an int64 along with whether the conversion was exact.
func (z *Nat) Int64() (int64, bool) {
	return z.ensure().Int64(), z.ensure().IsInt64()
}

// Uint64 returns z as a uint64 along with whether the conversion was exact.
func (z *Nat) Uint64() (uint64, bool) {
	return z.ensure().Uint64(), z.ensure().IsUint64()
}

// Float64 returns the nearest float64 to z, for use in the dispatcher's
// logarithmic heuristics. Precision loss for very large z is expected and
// acceptable there.
func (z *Nat) Float64() float64 {
	f := new(big.Float).SetInt(z.ensure())
	out, _ := f.Float64()
	return out
}

// Add sets z = x + y and returns z.
func (z *Nat) Add(x, y *Nat) *Nat {
	z.ensure().Add(x.ensure(), y.ensure())
	return z
}

// Sub sets z = x - y and returns z.
func (z *Nat) Sub(x, y *Nat) *Nat {
	z.ensure().Sub(x.ensure(), y.ensure())
	return z
}

// Mul sets z = x * y and returns z.
func (z *Nat) Mul(x, y *Nat) *Nat {
	z.ensure().Mul(x.ensure(), y.ensure())
	return z
}

// DivMod sets z = x div y, and returns z along with the Euclidean
// remainder r = x - z*y, with 0 <= r < |y|.
func (z *Nat) DivMod(x, y *Nat) (q, r *Nat) {
	q = z
	r = New()
	q.ensure().DivMod(x.ensure(), y.ensure(), r.ensure())
	return q, r
}

// Mod sets z = x mod m, the Euclidean remainder satisfying 0 <= z < |m|,
// and returns z. This matches the "reduce into [0, n)" semantics the
// dispatcher relies on for negative inputs.
func (z *Nat) Mod(x, m *Nat) *Nat {
	z.ensure().Mod(x.ensure(), m.ensure())
	return z
}

// ModAdd sets z = (x + y) mod m and returns z.
func (z *Nat) ModAdd(x, y, m *Nat) *Nat {
	z.ensure().Add(x.ensure(), y.ensure())
	z.ensure().Mod(z.ensure(), m.ensure())
	return z
}

// ModSub sets z = (x - y) mod m and returns z.
func (z *Nat) ModSub(x, y, m *Nat) *Nat {
	z.ensure().Sub(x.ensure(), y.ensure())
	z.ensure().Mod(z.ensure(), m.ensure())
	return z
}

// ModMul sets z = (x * y) mod m and returns z.
func (z *Nat) ModMul(x, y, m *Nat) *Nat {
	z.ensure().Mul(x.ensure(), y.ensure())
	z.ensure().Mod(z.ensure(), m.ensure())
	return z
}

// ModNeg sets z = (-x) mod m and returns z.
func (z *Nat) ModNeg(x, m *Nat) *Nat {
	z.ensure().Neg(x.ensure())
	z.ensure().Mod(z.ensure(), m.ensure())
	return z
}

// Exp sets z = x**y mod m and returns z. y must be non-negative; m must be
// positive. Uses math/big's constant-window exponentiation internally.
func (z *Nat) Exp(x, y, m *Nat) *Nat {
	z.ensure().Exp(x.ensure(), y.ensure(), m.ensure())
	return z
}

// Pow sets z = x**y (no modular reduction) and returns z. y must be
// non-negative.
func (z *Nat) Pow(x, y *Nat) *Nat {
	z.ensure().Exp(x.ensure(), y.ensure(), nil)
	return z
}

// GCD returns a new Nat holding gcd(x, y).
func GCD(x, y *Nat) *Nat {
	z := New()
	z.ensure().GCD(nil, nil, x.ensure(), y.ensure())
	return z
}

// Coprime reports whether gcd(x, y) == 1.
func (x *Nat) Coprime(y *Nat) bool {
	return GCD(x, y).IsOne()
}

// ErrNotInvertible is returned by ModInverse when x has no inverse mod m.
var ErrNotInvertible = errors.New("BigInt: not invertible")

// ModInverse sets z = x^-1 mod m and returns z. It fails if gcd(x, m) != 1.
func (z *Nat) ModInverse(x, m *Nat) (*Nat, error) {
	res := z.ensure().ModInverse(x.ensure(), m.ensure())
	if res == nil {
		return nil, ErrNotInvertible
	}
	return z, nil
}

// ProbablyPrime performs n Miller-Rabin rounds (plus a Baillie-PSW check,
// as math/big does) to test primality. A false result is certain; a true
// result is wrong with probability at most 4^-n.
func (z *Nat) ProbablyPrime(n int) bool {
	return z.ensure().ProbablyPrime(n)
}

// Sqrt sets z to floor(sqrt(x)) and returns z. Panics if x is negative,
// matching math/big.Int.Sqrt.
func (z *Nat) Sqrt(x *Nat) *Nat {
	z.ensure().Sqrt(x.ensure())
	return z
}

// Lsh sets z = x << shift and returns z.
func (z *Nat) Lsh(x *Nat, shift uint) *Nat {
	z.ensure().Lsh(x.ensure(), shift)
	return z
}

// Rsh sets z = x >> shift and returns z.
func (z *Nat) Rsh(x *Nat, shift uint) *Nat {
	z.ensure().Rsh(x.ensure(), shift)
	return z
}

// Bit returns the value of the i'th bit of z.
func (z *Nat) Bit(i int) uint {
	return z.ensure().Bit(i)
}

const maxRandomAttempts = 256

// ErrRandExhausted is returned by Random when rand kept producing values
// outside the target range for maxRandomAttempts tries in a row, which in
// practice only happens if rand is broken.
var ErrRandExhausted = fmt.Errorf("BigInt: failed to sample a value after %d attempts", maxRandomAttempts)

// Random draws a uniformly distributed value in [0, max) using rand as the
// source of entropy. max must be positive.
func Random(rand io.Reader, max *Nat) (*Nat, error) {
	out, err := randBig(rand, max.ensure())
	if err != nil {
		return nil, err
	}
	return New().SetBig(out), nil
}

func randBig(rand io.Reader, max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, fmt.Errorf("BigInt: Random requires a positive bound, got %s", max)
	}
	// bitLen is computed from max-1, the largest value actually in range,
	// so the most-significant byte gets a tight mask instead of a whole
	// extra byte whenever max is a power of two (same approach as
	// crypto/rand.Int). Without the mask, acceptance probability collapses
	// toward 1/256 whenever max's bit length is 1 mod 8.
	limit := new(big.Int).Sub(max, big.NewInt(1))
	bitLen := limit.BitLen()
	if bitLen == 0 {
		return new(big.Int), nil
	}
	byteLen := (bitLen + 7) / 8
	msbBits := uint(bitLen % 8)
	if msbBits == 0 {
		msbBits = 8
	}
	msbMask := byte(1<<msbBits - 1)

	buf := make([]byte, byteLen)
	out := new(big.Int)
	for i := 0; i < maxRandomAttempts; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= msbMask
		out.SetBytes(buf)
		if out.Cmp(max) < 0 {
			return out, nil
		}
	}
	return nil, ErrRandExhausted
}

// RandomRange draws a uniformly distributed value in [lo, hi).
func RandomRange(rand io.Reader, lo, hi *Nat) (*Nat, error) {
	span := New().Sub(hi, lo)
	r, err := Random(rand, span)
	if err != nil {
		return nil, err
	}
	return r.Add(r, lo), nil
}

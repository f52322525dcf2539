package num

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Uint a wrapper over a 256bit unsigned integer, the unit every balance,
// stake and allowance in the system is expressed in.
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint with the value of the uint64 passed in.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to zero.
func UintZero() *Uint {
	return NewUint(0)
}

// UintFromString creates a new Uint from a base 10 string.
// Returns true if parsing failed or the value overflowed.
func UintFromString(str string) (*Uint, bool) {
	b, ok := big.NewInt(0).SetString(str, 10)
	if !ok || b.Sign() < 0 {
		return UintZero(), true
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return UintZero(), true
	}
	return &Uint{*u}, false
}

// Sum returns a new Uint equal to the sum of all values passed in.
func Sum(vals ...*Uint) *Uint {
	return UintZero().AddSum(vals...)
}

// Min returns the smallest of the 2 numbers.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a.Clone()
	}
	return b.Clone()
}

func (z *Uint) Clone() *Uint {
	return &Uint{z.u}
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

func (z Uint) String() string {
	return z.u.ToBig().String()
}

// Add sets z to x + y and returns z for chaining.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddSum adds all the values passed in to z.
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.u.Add(&z.u, &x.u)
	}
	return z
}

// Sub sets z to x - y and returns z. The caller is expected to have
// checked x >= y, underflow wraps as per uint256.
func (z *Uint) Sub(x, y *Uint) *Uint {
	z.u.Sub(&x.u, &y.u)
	return z
}

// Mul sets z to x * y and returns z.
func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

func (z Uint) IsZero() bool {
	return z.u.IsZero()
}

func (z *Uint) EQ(oth *Uint) bool {
	return z.u.Eq(&oth.u)
}

func (z *Uint) NEQ(oth *Uint) bool {
	return !z.u.Eq(&oth.u)
}

func (z *Uint) GT(oth *Uint) bool {
	return z.u.Gt(&oth.u)
}

func (z *Uint) GTE(oth *Uint) bool {
	return !z.u.Lt(&oth.u)
}

func (z *Uint) LT(oth *Uint) bool {
	return z.u.Lt(&oth.u)
}

func (z *Uint) LTE(oth *Uint) bool {
	return !z.u.Gt(&oth.u)
}

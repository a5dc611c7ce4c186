package types

import (
	"encoding/json"
	"math/big"
	"strings"

	"cosmossdk.io/math"
)

// MaxUintBits is the widest intermediate value any curve computation may
// produce. Native token amounts fit in 64 bits, products of two amounts in
// 128, and the stable invariant needs up to 256.
const MaxUintBits = math.MaxBitLen

// Uint is a non-negative integer of at most MaxUintBits bits. Every
// arithmetic method checks its result and reports ErrCalculationFailure
// instead of wrapping or going negative. The zero value is 0.
type Uint struct {
	i math.Int
}

// NewUint returns a Uint holding v.
func NewUint(v uint64) Uint {
	return Uint{i: math.NewIntFromUint64(v)}
}

// ZeroUint returns 0.
func ZeroUint() Uint {
	return Uint{i: math.ZeroInt()}
}

// OneUint returns 1.
func OneUint() Uint {
	return Uint{i: math.OneInt()}
}

// NewUintFromInt converts a math.Int, rejecting negative values.
func NewUintFromInt(i math.Int) (Uint, error) {
	if i.IsNil() {
		return ZeroUint(), nil
	}
	if i.IsNegative() {
		return Uint{}, ErrCalculationFailure.Wrapf("negative value %s", i)
	}
	return Uint{i: i}, nil
}

// NewUintFromBigInt converts a big.Int, rejecting negative values and values
// wider than MaxUintBits.
func NewUintFromBigInt(b *big.Int) (Uint, error) {
	if b == nil {
		return ZeroUint(), nil
	}
	if b.Sign() < 0 {
		return Uint{}, ErrCalculationFailure.Wrapf("negative value %s", b)
	}
	if b.BitLen() > MaxUintBits {
		return Uint{}, ErrCalculationFailure.Wrapf("value exceeds %d bits", MaxUintBits)
	}
	return Uint{i: math.NewIntFromBigInt(b)}, nil
}

// ParseUint parses a base-10 string.
func ParseUint(s string) (Uint, error) {
	b, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Uint{}, ErrInvalidInput.Wrapf("invalid integer %q", s)
	}
	return NewUintFromBigInt(b)
}

func (u Uint) value() math.Int {
	if u.i.IsNil() {
		return math.ZeroInt()
	}
	return u.i
}

// Int returns the value as a math.Int.
func (u Uint) Int() math.Int { return u.value() }

// BigInt returns a copy of the value as a big.Int.
func (u Uint) BigInt() *big.Int { return u.value().BigInt() }

// LegacyDec returns the value as a decimal.
func (u Uint) LegacyDec() math.LegacyDec { return math.LegacyNewDecFromInt(u.value()) }

func (u Uint) String() string { return u.value().String() }

func (u Uint) IsZero() bool { return u.value().IsZero() }
func (u Uint) Equal(o Uint) bool { return u.value().Equal(o.value()) }
func (u Uint) LT(o Uint) bool { return u.value().LT(o.value()) }
func (u Uint) LTE(o Uint) bool { return u.value().LTE(o.value()) }
func (u Uint) GT(o Uint) bool { return u.value().GT(o.value()) }
func (u Uint) GTE(o Uint) bool { return u.value().GTE(o.value()) }
func (u Uint) BitLen() int { return u.value().BigInt().BitLen() }
func (u Uint) IsUint64() bool { return u.value().IsUint64() }
func (u Uint) AbsDiff(o Uint) Uint { return Uint{i: u.value().Sub(o.value()).Abs()} }

// Uint64 narrows the value to 64 bits.
func (u Uint) Uint64() (uint64, error) {
	if !u.value().IsUint64() {
		return 0, ErrConversionFailure.Wrapf("%s does not fit in 64 bits", u)
	}
	return u.value().Uint64(), nil
}

// Add returns u + o.
func (u Uint) Add(o Uint) (Uint, error) {
	res, err := u.value().SafeAdd(o.value())
	if err != nil {
		return Uint{}, ErrCalculationFailure.Wrapf("overflow: %s + %s: %v", u, o, err)
	}
	return Uint{i: res}, nil
}

// Sub returns u - o, failing when o > u.
func (u Uint) Sub(o Uint) (Uint, error) {
	if u.LT(o) {
		return Uint{}, ErrCalculationFailure.Wrapf("underflow: %s - %s", u, o)
	}
	return Uint{i: u.value().Sub(o.value())}, nil
}

// Mul returns u * o.
func (u Uint) Mul(o Uint) (Uint, error) {
	if u.IsZero() || o.IsZero() {
		return ZeroUint(), nil
	}
	res, err := u.value().SafeMul(o.value())
	if err != nil {
		return Uint{}, ErrCalculationFailure.Wrapf("overflow: %s * %s: %v", u, o, err)
	}
	return Uint{i: res}, nil
}

// Quo returns floor(u / o).
func (u Uint) Quo(o Uint) (Uint, error) {
	if o.IsZero() {
		return Uint{}, ErrCalculationFailure.Wrapf("division by zero: %s / 0", u)
	}
	return Uint{i: u.value().Quo(o.value())}, nil
}

// Rem returns u mod o.
func (u Uint) Rem(o Uint) (Uint, error) {
	if o.IsZero() {
		return Uint{}, ErrCalculationFailure.Wrapf("division by zero: %s %% 0", u)
	}
	return Uint{i: u.value().Mod(o.value())}, nil
}

// QuoCeil returns ceil(u / o).
func (u Uint) QuoCeil(o Uint) (Uint, error) {
	q, err := u.Quo(o)
	if err != nil {
		return Uint{}, err
	}
	r, err := u.Rem(o)
	if err != nil {
		return Uint{}, err
	}
	if r.IsZero() {
		return q, nil
	}
	return q.Add(OneUint())
}

// QuoRound divides rounding in the requested direction.
func (u Uint) QuoRound(o Uint, round RoundDirection) (Uint, error) {
	if round == RoundCeiling {
		return u.QuoCeil(o)
	}
	return u.Quo(o)
}

// MulDiv returns u * num / den rounded in the requested direction.
func (u Uint) MulDiv(num, den Uint, round RoundDirection) (Uint, error) {
	product, err := u.Mul(num)
	if err != nil {
		return Uint{}, err
	}
	return product.QuoRound(den, round)
}

// CeilDiv divides rounding the quotient up, and also returns the smallest
// divisor that yields that quotient. Curves use the adjusted divisor as the
// amount actually taken from the trader so the invariant never shrinks.
//
// A quotient below one rounds to one when u is at least half of rhs, and to
// zero otherwise; in both cases the returned divisor is zero.
func (u Uint) CeilDiv(rhs Uint) (quotient Uint, divisor Uint, err error) {
	quotient, err = u.Quo(rhs)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	if quotient.IsZero() {
		doubled, err := u.Mul(NewUint(2))
		if err != nil {
			return Uint{}, Uint{}, err
		}
		if doubled.GTE(rhs) {
			return OneUint(), ZeroUint(), nil
		}
		return ZeroUint(), ZeroUint(), nil
	}

	remainder, err := u.Rem(rhs)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	if remainder.IsZero() {
		return quotient, rhs, nil
	}

	if quotient, err = quotient.Add(OneUint()); err != nil {
		return Uint{}, Uint{}, err
	}
	if divisor, err = u.QuoCeil(quotient); err != nil {
		return Uint{}, Uint{}, err
	}
	return quotient, divisor, nil
}

// Sqrt returns floor(sqrt(u)).
func (u Uint) Sqrt() Uint {
	return Uint{i: math.NewIntFromBigInt(new(big.Int).Sqrt(u.BigInt()))}
}

// SqrtCeil returns ceil(sqrt(u)).
func (u Uint) SqrtCeil() Uint {
	root := new(big.Int).Sqrt(u.BigInt())
	if new(big.Int).Mul(root, root).Cmp(u.BigInt()) < 0 {
		root.Add(root, big.NewInt(1))
	}
	return Uint{i: math.NewIntFromBigInt(root)}
}

// SqrtRound returns the square root rounded in the requested direction.
func (u Uint) SqrtRound(round RoundDirection) Uint {
	if round == RoundCeiling {
		return u.SqrtCeil()
	}
	return u.Sqrt()
}

// MinUint returns the smaller of a and b.
func MinUint(a, b Uint) Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// MaxUint returns the larger of a and b.
func MaxUint(a, b Uint) Uint {
	if a.GT(b) {
		return a
	}
	return b
}

// MarshalJSON encodes the value as a decimal string.
func (u Uint) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts a decimal string or a bare JSON number.
func (u *Uint) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(bz, &n); err != nil {
			return ErrInvalidInput.Wrapf("invalid integer %s", string(bz))
		}
		s = n.String()
	}
	v, err := ParseUint(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalYAML encodes the value as a decimal string.
func (u Uint) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

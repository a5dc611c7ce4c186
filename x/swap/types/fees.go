package types

import (
	"fmt"
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/spf13/cast"
)

// Fraction is a fee rate expressed as numerator / denominator. The zero
// value 0/0 means "no fee".
type Fraction struct {
	Numerator   uint64 `json:"numerator" yaml:"numerator"`
	Denominator uint64 `json:"denominator" yaml:"denominator"`
}

// NewFraction returns numerator / denominator.
func NewFraction(numerator, denominator uint64) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// ParseFraction parses "n/d". A bare "0" or an empty string is the empty
// fraction.
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return Fraction{}, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Fraction{}, ErrInvalidFee.Wrapf("fee %q must be written as numerator/denominator", s)
	}

	numerator, err := cast.ToUint64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return Fraction{}, ErrInvalidFee.Wrapf("fee numerator %q: %v", parts[0], err)
	}
	denominator, err := cast.ToUint64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return Fraction{}, ErrInvalidFee.Wrapf("fee denominator %q: %v", parts[1], err)
	}

	return NewFraction(numerator, denominator), nil
}

// IsZero reports whether the fraction charges nothing.
func (f Fraction) IsZero() bool {
	return f.Numerator == 0 || f.Denominator == 0
}

// Validate accepts 0/0 and any fraction of at most one.
func (f Fraction) Validate() error {
	if f.Numerator == 0 && f.Denominator == 0 {
		return nil
	}
	if f.Denominator == 0 {
		return ErrInvalidFee.Wrapf("zero denominator with numerator %d", f.Numerator)
	}
	if f.Numerator > f.Denominator {
		return ErrInvalidFee.Wrapf("rate %d/%d exceeds one", f.Numerator, f.Denominator)
	}
	return nil
}

// Dec returns the rate as a decimal, for display.
func (f Fraction) Dec() math.LegacyDec {
	if f.IsZero() {
		return math.LegacyZeroDec()
	}
	return math.LegacyNewDecFromInt(math.NewIntFromUint64(f.Numerator)).
		Quo(math.LegacyNewDecFromInt(math.NewIntFromUint64(f.Denominator)))
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// CalculateFee returns floor(amount * fraction) with a minimum of one unit
// whenever both the amount and the rate are non-zero.
func CalculateFee(amount Uint, fraction Fraction) (Uint, error) {
	if fraction.Numerator == 0 || amount.IsZero() {
		return ZeroUint(), nil
	}

	fee, err := amount.MulDiv(NewUint(fraction.Numerator), NewUint(fraction.Denominator), RoundFloor)
	if err != nil {
		return Uint{}, ErrFeeCalculationFailure.Wrapf("fee on %s at %s: %v", amount, fraction, err)
	}
	if fee.IsZero() {
		return OneUint(), nil
	}
	return fee, nil
}

// preFeeAmount inverts a single fee rate: the smallest gross amount whose
// net amount after the fee is postFeeAmount.
func preFeeAmount(postFeeAmount Uint, numerator, denominator Uint) (Uint, error) {
	if numerator.IsZero() || denominator.IsZero() {
		return postFeeAmount, nil
	}
	if numerator.Equal(denominator) || postFeeAmount.IsZero() {
		return ZeroUint(), nil
	}

	scaled, err := postFeeAmount.Mul(denominator)
	if err != nil {
		return Uint{}, err
	}
	remaining, err := denominator.Sub(numerator)
	if err != nil {
		return Uint{}, err
	}
	gross, _, err := scaled.CeilDiv(remaining)
	return gross, err
}

// Fees is the full fee schedule of a pool.
type Fees struct {
	// TradeFee is charged on every swap and stays in the pool.
	TradeFee Fraction `json:"trade_fee" yaml:"trade_fee"`
	// OwnerTradeFee is charged on every swap and paid to the owner as pool
	// tokens.
	OwnerTradeFee Fraction `json:"owner_trade_fee" yaml:"owner_trade_fee"`
	// OwnerWithdrawFee is charged in pool tokens on withdrawals.
	OwnerWithdrawFee Fraction `json:"owner_withdraw_fee" yaml:"owner_withdraw_fee"`
	// HostFee is the integrator's cut, taken out of the owner fee.
	HostFee Fraction `json:"host_fee" yaml:"host_fee"`
}

// Validate checks every fraction, then that the trade and owner trade fees
// together stay below one so a swap always leaves some input to trade.
func (f Fees) Validate() error {
	for _, entry := range []struct {
		name     string
		fraction Fraction
	}{
		{"trade fee", f.TradeFee},
		{"owner trade fee", f.OwnerTradeFee},
		{"owner withdraw fee", f.OwnerWithdrawFee},
		{"host fee", f.HostFee},
	} {
		if err := entry.fraction.Validate(); err != nil {
			return sdkerrors.Wrap(err, entry.name)
		}
	}

	numerator, denominator := NewUint(f.TradeFee.Numerator), NewUint(f.TradeFee.Denominator)
	switch {
	case f.TradeFee.IsZero():
		numerator, denominator = NewUint(f.OwnerTradeFee.Numerator), NewUint(f.OwnerTradeFee.Denominator)
	case !f.OwnerTradeFee.IsZero():
		var err error
		if numerator, denominator, err = f.combinedTradingFee(); err != nil {
			return ErrInvalidFee.Wrapf("combining trade fees: %v", err)
		}
	}
	if !numerator.IsZero() && numerator.GTE(denominator) {
		return ErrInvalidFee.Wrapf("trade fee %s and owner trade fee %s take the whole input", f.TradeFee, f.OwnerTradeFee)
	}
	return nil
}

// TradingFee is the part of a swap input kept by the pool.
func (f Fees) TradingFee(tradingTokens Uint) (Uint, error) {
	return CalculateFee(tradingTokens, f.TradeFee)
}

// OwnerTradingFee is the part of a swap input paid to the pool owner.
func (f Fees) OwnerTradingFee(tradingTokens Uint) (Uint, error) {
	return CalculateFee(tradingTokens, f.OwnerTradeFee)
}

// OwnerWithdrawFeeAmount is the pool-token fee charged on withdrawals.
func (f Fees) OwnerWithdrawFeeAmount(poolTokens Uint) (Uint, error) {
	return CalculateFee(poolTokens, f.OwnerWithdrawFee)
}

// HostFeeAmount splits an owner fee that was already taken. The result
// never exceeds ownerFee.
func (f Fees) HostFeeAmount(ownerFee Uint) (Uint, error) {
	return CalculateFee(ownerFee, f.HostFee)
}

// PreTradingFeeAmount returns the gross amount that nets postFeeAmount after
// both the trade fee and the owner trade fee.
func (f Fees) PreTradingFeeAmount(postFeeAmount Uint) (Uint, error) {
	var (
		gross Uint
		err   error
	)
	switch {
	case f.TradeFee.IsZero():
		gross, err = preFeeAmount(postFeeAmount, NewUint(f.OwnerTradeFee.Numerator), NewUint(f.OwnerTradeFee.Denominator))
	case f.OwnerTradeFee.IsZero():
		gross, err = preFeeAmount(postFeeAmount, NewUint(f.TradeFee.Numerator), NewUint(f.TradeFee.Denominator))
	default:
		numerator, denominator, combineErr := f.combinedTradingFee()
		if combineErr != nil {
			return Uint{}, ErrFeeCalculationFailure.Wrapf("combining trade fees: %v", combineErr)
		}
		gross, err = preFeeAmount(postFeeAmount, numerator, denominator)
	}
	if err != nil {
		return Uint{}, ErrFeeCalculationFailure.Wrapf("pre-fee amount for %s: %v", postFeeAmount, err)
	}
	return gross, nil
}

// combinedTradingFee adds the trade and owner fractions over a common
// denominator.
func (f Fees) combinedTradingFee() (Uint, Uint, error) {
	tn, td := NewUint(f.TradeFee.Numerator), NewUint(f.TradeFee.Denominator)
	on, od := NewUint(f.OwnerTradeFee.Numerator), NewUint(f.OwnerTradeFee.Denominator)

	left, err := tn.Mul(od)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	right, err := on.Mul(td)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	numerator, err := left.Add(right)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	denominator, err := td.Mul(od)
	if err != nil {
		return Uint{}, Uint{}, err
	}
	return numerator, denominator, nil
}

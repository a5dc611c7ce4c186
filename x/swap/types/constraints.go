package types

// SwapConstraints is an optional deployment policy applied when a pool is
// initialized. A nil *SwapConstraints allows everything.
type SwapConstraints struct {
	// OwnerKey, when set, must own the pool's fee account.
	OwnerKey string `json:"owner_key" yaml:"owner_key"`
	// ValidCurveTypes lists the curve types a pool may use.
	ValidCurveTypes []CurveType `json:"valid_curve_types" yaml:"valid_curve_types"`
	// Fees, when set, is the minimum fee schedule. Numerators may be raised
	// but denominators and the host fee must match exactly.
	Fees *Fees `json:"fees,omitempty" yaml:"fees,omitempty"`
}

// ValidateCurve rejects curve types outside the allowlist. Unknown and
// disallowed types produce the same error.
func (c *SwapConstraints) ValidateCurve(curveType CurveType) error {
	if !curveType.IsValid() {
		return ErrUnsupportedCurveType.Wrapf("curve type %d", uint8(curveType))
	}
	if c == nil {
		return nil
	}
	for _, allowed := range c.ValidCurveTypes {
		if allowed == curveType {
			return nil
		}
	}
	return ErrUnsupportedCurveType.Wrapf("curve type %d", uint8(curveType))
}

// ValidateFees checks fees against the minimum schedule.
func (c *SwapConstraints) ValidateFees(fees Fees) error {
	if c == nil || c.Fees == nil {
		return nil
	}
	required := *c.Fees

	atLeast := func(name string, got, want Fraction) error {
		if got.Denominator != want.Denominator || got.Numerator < want.Numerator {
			return ErrInvalidFee.Wrapf("%s %s is below the required %s", name, got, want)
		}
		return nil
	}

	if err := atLeast("trade fee", fees.TradeFee, required.TradeFee); err != nil {
		return err
	}
	if err := atLeast("owner trade fee", fees.OwnerTradeFee, required.OwnerTradeFee); err != nil {
		return err
	}
	if err := atLeast("owner withdraw fee", fees.OwnerWithdrawFee, required.OwnerWithdrawFee); err != nil {
		return err
	}
	if fees.HostFee != required.HostFee {
		return ErrInvalidFee.Wrapf("host fee %s must equal %s", fees.HostFee, required.HostFee)
	}
	return nil
}

// ValidateOwner checks the fee account owner.
func (c *SwapConstraints) ValidateOwner(owner string) error {
	if c == nil || c.OwnerKey == "" {
		return nil
	}
	if owner != c.OwnerKey {
		return ErrInvalidOwner.Wrapf("fee account owner %q", owner)
	}
	return nil
}

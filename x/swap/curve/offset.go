package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// OffsetCurve is a constant product curve whose token B reserve is shifted
// up by a virtual TokenBOffset. A pool can therefore be seeded with token A
// only and still quote a price. Pool tokens only ever represent real
// reserves, so deposits are disabled.
type OffsetCurve struct {
	TokenBOffset uint64
}

var _ Calculator = OffsetCurve{}

func (OffsetCurve) isCalculator() {}

func (OffsetCurve) CurveType() types.CurveType {
	return types.CurveTypeOffset
}

func (c OffsetCurve) offset() types.Uint {
	return types.NewUint(c.TokenBOffset)
}

// EffectiveReserves returns (a, b + offset).
func (c OffsetCurve) EffectiveReserves(swapTokenAAmount, swapTokenBAmount types.Uint) (types.Uint, types.Uint, error) {
	effectiveB, err := swapTokenBAmount.Add(c.offset())
	if err != nil {
		return types.Uint{}, types.Uint{}, err
	}
	return swapTokenAAmount, effectiveB, nil
}

func (c OffsetCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint, direction types.TradeDirection) (types.SwapWithoutFeesResult, error) {
	var err error
	switch direction {
	case types.BtoA:
		swapSourceAmount, err = swapSourceAmount.Add(c.offset())
	default:
		swapDestinationAmount, err = swapDestinationAmount.Add(c.offset())
	}
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}

	return constantProductSwap(sourceAmount, swapSourceAmount, swapDestinationAmount)
}

// PoolTokensToTradingTokens converts against the real reserves so a
// withdrawal can never pay out the virtual offset.
func (OffsetCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	return proportionalTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount, round)
}

func (c OffsetCurve) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	effectiveA, effectiveB, err := c.EffectiveReserves(swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return types.Uint{}, err
	}
	reserve := selectReserve(effectiveA, effectiveB, direction)
	return constantProductDepositSingle(sourceAmount, reserve, poolSupply, round)
}

func (c OffsetCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	effectiveA, effectiveB, err := c.EffectiveReserves(swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return types.Uint{}, err
	}
	reserve := selectReserve(effectiveA, effectiveB, direction)
	return constantProductWithdrawSingle(sourceAmount, reserve, poolSupply, round)
}

func (c OffsetCurve) NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	effectiveA, effectiveB, err := c.EffectiveReserves(swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return constantProductNormalizedValue(effectiveA, effectiveB)
}

func (c OffsetCurve) Validate() error {
	if c.TokenBOffset == 0 {
		return types.ErrInvalidCurve.Wrap("offset curve needs a non-zero token B offset")
	}
	return nil
}

// ValidateSupply needs token A only; the offset stands in for token B.
func (OffsetCurve) ValidateSupply(tokenAAmount, _ types.Uint) error {
	if tokenAAmount.IsZero() {
		return types.ErrEmptySupply.Wrap("token A reserve is empty")
	}
	return nil
}

func (OffsetCurve) AllowsDeposits() bool {
	return false
}

func (OffsetCurve) NewPoolSupply() types.Uint {
	return newPoolSupply()
}

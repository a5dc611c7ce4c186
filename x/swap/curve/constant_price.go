package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// ConstantPriceCurve trades at a fixed rate: one token B is worth
// TokenBPrice token A.
type ConstantPriceCurve struct {
	TokenBPrice uint64
}

var _ Calculator = ConstantPriceCurve{}

func (ConstantPriceCurve) isCalculator() {}

func (ConstantPriceCurve) CurveType() types.CurveType {
	return types.CurveTypeConstantPrice
}

// SwapWithoutFees pays out whole units only. Buying token B with an amount
// of A that is not a multiple of the price takes only the multiple; fees
// are not recomputed for the unused remainder.
func (c ConstantPriceCurve) SwapWithoutFees(sourceAmount, _, _ types.Uint, direction types.TradeDirection) (types.SwapWithoutFeesResult, error) {
	price := types.NewUint(c.TokenBPrice)

	var (
		sourceAmountSwapped      = sourceAmount
		destinationAmountSwapped types.Uint
		err                      error
	)
	switch direction {
	case types.BtoA:
		destinationAmountSwapped, err = sourceAmount.Mul(price)
		if err != nil {
			return types.SwapWithoutFeesResult{}, err
		}
	default:
		destinationAmountSwapped, err = sourceAmount.Quo(price)
		if err != nil {
			return types.SwapWithoutFeesResult{}, err
		}
		remainder, err := sourceAmount.Rem(price)
		if err != nil {
			return types.SwapWithoutFeesResult{}, err
		}
		if sourceAmountSwapped, err = sourceAmount.Sub(remainder); err != nil {
			return types.SwapWithoutFeesResult{}, err
		}
	}

	if destinationAmountSwapped.IsZero() {
		return types.SwapWithoutFeesResult{}, types.ErrZeroTradingTokens.Wrapf(
			"input %s is below the price of one token B (%d)", sourceAmount, c.TokenBPrice)
	}

	return types.SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmountSwapped,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

func (ConstantPriceCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	return proportionalTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount, round)
}

func (c ConstantPriceCurve) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	return c.tradingTokensToPoolTokens(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, direction, round)
}

func (c ConstantPriceCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	return c.tradingTokensToPoolTokens(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, direction, round)
}

// tradingTokensToPoolTokens values the pool in token A and returns the
// share of the supply that sourceAmount is worth.
func (c ConstantPriceCurve) tradingTokensToPoolTokens(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	price := types.NewUint(c.TokenBPrice)

	givenValue := sourceAmount
	if direction == types.BtoA {
		var err error
		if givenValue, err = sourceAmount.Mul(price); err != nil {
			return types.Uint{}, err
		}
	}

	totalValue, err := c.totalValue(swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return types.Uint{}, err
	}
	return poolSupply.MulDiv(givenValue, totalValue, round)
}

// totalValue is the pool's value in token A: b * price + a.
func (c ConstantPriceCurve) totalValue(swapTokenAAmount, swapTokenBAmount types.Uint) (types.Uint, error) {
	bValue, err := swapTokenBAmount.Mul(types.NewUint(c.TokenBPrice))
	if err != nil {
		return types.Uint{}, err
	}
	return bValue.Add(swapTokenAAmount)
}

func (c ConstantPriceCurve) NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	total, err := c.totalValue(swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if total.BitLen() > maxDecimalBits {
		return math.LegacyDec{}, types.ErrCalculationFailure.Wrapf("%s is too large for a decimal value", total)
	}
	return total.LegacyDec().QuoInt64(2), nil
}

func (c ConstantPriceCurve) Validate() error {
	if c.TokenBPrice == 0 {
		return types.ErrInvalidCurve.Wrap("constant price curve needs a non-zero token B price")
	}
	return nil
}

// ValidateSupply accepts a pool seeded on one side only.
func (ConstantPriceCurve) ValidateSupply(tokenAAmount, tokenBAmount types.Uint) error {
	if tokenAAmount.IsZero() && tokenBAmount.IsZero() {
		return types.ErrEmptySupply.Wrap("both reserves are empty")
	}
	return nil
}

func (ConstantPriceCurve) AllowsDeposits() bool {
	return true
}

func (ConstantPriceCurve) NewPoolSupply() types.Uint {
	return newPoolSupply()
}

package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// maxDecimalBits keeps values converted to math.LegacyDec well inside its
// 18-decimal precision range.
const maxDecimalBits = 192

// ConstantProductCurve keeps reserveA * reserveB from decreasing.
type ConstantProductCurve struct{}

var _ Calculator = ConstantProductCurve{}

func (ConstantProductCurve) isCalculator() {}

func (ConstantProductCurve) CurveType() types.CurveType {
	return types.CurveTypeConstantProduct
}

func (ConstantProductCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint, _ types.TradeDirection) (types.SwapWithoutFeesResult, error) {
	return constantProductSwap(sourceAmount, swapSourceAmount, swapDestinationAmount)
}

func (ConstantProductCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	return proportionalTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount, round)
}

func (ConstantProductCurve) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	reserve := selectReserve(swapTokenAAmount, swapTokenBAmount, direction)
	return constantProductDepositSingle(sourceAmount, reserve, poolSupply, round)
}

func (ConstantProductCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	reserve := selectReserve(swapTokenAAmount, swapTokenBAmount, direction)
	return constantProductWithdrawSingle(sourceAmount, reserve, poolSupply, round)
}

func (ConstantProductCurve) NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	return constantProductNormalizedValue(swapTokenAAmount, swapTokenBAmount)
}

func (ConstantProductCurve) Validate() error {
	return nil
}

func (ConstantProductCurve) ValidateSupply(tokenAAmount, tokenBAmount types.Uint) error {
	return validateBothSidesSupplied(tokenAAmount, tokenBAmount)
}

func (ConstantProductCurve) AllowsDeposits() bool {
	return true
}

func (ConstantProductCurve) NewPoolSupply() types.Uint {
	return newPoolSupply()
}

// constantProductSwap solves x * y = k for the destination amount. The new
// destination reserve is rounded up, and the source actually taken is the
// smallest amount that still keeps the product at or above k.
func constantProductSwap(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint) (types.SwapWithoutFeesResult, error) {
	invariant, err := swapSourceAmount.Mul(swapDestinationAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}

	newSwapSourceAmount, err := swapSourceAmount.Add(sourceAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}

	newSwapDestinationAmount, newSwapSourceAmount, err := invariant.CeilDiv(newSwapSourceAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}

	sourceAmountSwapped, err := newSwapSourceAmount.Sub(swapSourceAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, types.ErrCalculationFailure.Wrapf(
			"constant product: input %s exhausts reserves (%s, %s)", sourceAmount, swapSourceAmount, swapDestinationAmount)
	}

	destinationAmountSwapped, err := swapDestinationAmount.Sub(newSwapDestinationAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}
	if destinationAmountSwapped.IsZero() {
		return types.SwapWithoutFeesResult{}, types.ErrZeroTradingTokens.Wrapf("input %s yields no output", sourceAmount)
	}

	return types.SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmountSwapped,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

// constantProductDepositSingle returns supply * (sqrt((R + s) / R) - 1).
// The square root is taken over supply^2 * (R + s) / R, which makes the
// rounding exact in either direction.
func constantProductDepositSingle(sourceAmount, swapSourceAmount, poolSupply types.Uint, round types.RoundDirection) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}

	grown, err := swapSourceAmount.Add(sourceAmount)
	if err != nil {
		return types.Uint{}, err
	}
	scaled, err := scaledSupplySquare(poolSupply, grown, swapSourceAmount, round)
	if err != nil {
		return types.Uint{}, err
	}
	return scaled.SqrtRound(round).Sub(poolSupply)
}

// constantProductWithdrawSingle returns supply * (1 - sqrt((R - s) / R)).
// Rounding the result up means rounding the remaining share down.
func constantProductWithdrawSingle(sourceAmount, swapSourceAmount, poolSupply types.Uint, round types.RoundDirection) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}

	shrunk, err := swapSourceAmount.Sub(sourceAmount)
	if err != nil {
		return types.Uint{}, err
	}
	remainingRound := types.RoundFloor
	if round == types.RoundFloor {
		remainingRound = types.RoundCeiling
	}
	scaled, err := scaledSupplySquare(poolSupply, shrunk, swapSourceAmount, remainingRound)
	if err != nil {
		return types.Uint{}, err
	}
	return poolSupply.Sub(scaled.SqrtRound(remainingRound))
}

// scaledSupplySquare returns supply^2 * numerator / denominator.
func scaledSupplySquare(poolSupply, numerator, denominator types.Uint, round types.RoundDirection) (types.Uint, error) {
	supplySquared, err := poolSupply.Mul(poolSupply)
	if err != nil {
		return types.Uint{}, err
	}
	return supplySquared.MulDiv(numerator, denominator, round)
}

func constantProductNormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	product, err := swapTokenAAmount.Mul(swapTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if product.BitLen() > maxDecimalBits {
		return math.LegacyDec{}, types.ErrCalculationFailure.Wrapf("%s is too large for a decimal square root", product)
	}
	root, err := product.LegacyDec().ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, types.ErrCalculationFailure.Wrapf("sqrt(%s): %v", product, err)
	}
	return root, nil
}

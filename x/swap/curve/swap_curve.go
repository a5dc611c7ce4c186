package curve

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// SwapCurve pairs a curve type with its calculator and applies the fee
// policy around the raw invariant math.
type SwapCurve struct {
	CurveType  types.CurveType
	Calculator Calculator
}

// BuildCurve builds and validates the calculator for input with the
// default solver bounds.
func BuildCurve(input types.CurveInput) (SwapCurve, error) {
	return BuildCurveWithSolver(input, DefaultSolverParams())
}

// BuildCurveWithSolver builds and validates the calculator for input. The
// solver bounds only apply to stable curves.
func BuildCurveWithSolver(input types.CurveInput, solver SolverParams) (SwapCurve, error) {
	calculator, err := newCalculator(input, solver)
	if err != nil {
		return SwapCurve{}, err
	}
	if err := calculator.Validate(); err != nil {
		return SwapCurve{}, err
	}
	return SwapCurve{CurveType: input.CurveType, Calculator: calculator}, nil
}

// SupportsDeposits reports whether pools of curveType accept deposits. It
// does not depend on the curve parameter.
func SupportsDeposits(curveType types.CurveType) bool {
	calculator, err := newCalculator(types.CurveInput{CurveType: curveType}, DefaultSolverParams())
	if err != nil {
		return false
	}
	return calculator.AllowsDeposits()
}

func newCalculator(input types.CurveInput, solver SolverParams) (Calculator, error) {
	switch input.CurveType {
	case types.CurveTypeConstantProduct:
		return ConstantProductCurve{}, nil
	case types.CurveTypeConstantPrice:
		return ConstantPriceCurve{TokenBPrice: input.CurveParameters}, nil
	case types.CurveTypeStable:
		return StableCurve{Amp: input.CurveParameters, Solver: solver}, nil
	case types.CurveTypeOffset:
		return OffsetCurve{TokenBOffset: input.CurveParameters}, nil
	default:
		return nil, types.ErrUnsupportedCurveType.Wrapf("curve type %d", uint8(input.CurveType))
	}
}

// Input returns the configuration the curve was built from.
func (s SwapCurve) Input() types.CurveInput {
	input := types.CurveInput{CurveType: s.CurveType}
	switch c := s.Calculator.(type) {
	case ConstantPriceCurve:
		input.CurveParameters = c.TokenBPrice
	case StableCurve:
		input.CurveParameters = c.Amp
	case OffsetCurve:
		input.CurveParameters = c.TokenBOffset
	}
	return input
}

// Swap charges the trade and owner fees on sourceAmount, solves the curve
// for the remainder and returns the resulting reserves. SourceAmountSwapped
// in the result includes the fees.
func (s SwapCurve) Swap(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint, direction types.TradeDirection, fees types.Fees) (types.SwapResult, error) {
	if sourceAmount.IsZero() {
		return types.SwapResult{}, types.ErrZeroTradingTokens.Wrap("source amount is zero")
	}

	tradeFee, err := fees.TradingFee(sourceAmount)
	if err != nil {
		return types.SwapResult{}, feeFailure(err)
	}
	ownerFee, err := fees.OwnerTradingFee(sourceAmount)
	if err != nil {
		return types.SwapResult{}, feeFailure(err)
	}
	totalFees, err := tradeFee.Add(ownerFee)
	if err != nil {
		return types.SwapResult{}, feeFailure(err)
	}
	if totalFees.GTE(sourceAmount) {
		return types.SwapResult{}, types.ErrZeroTradingTokens.Wrapf(
			"fees %s consume the whole input %s", totalFees, sourceAmount)
	}
	netSourceAmount, err := sourceAmount.Sub(totalFees)
	if err != nil {
		return types.SwapResult{}, err
	}

	raw, err := s.Calculator.SwapWithoutFees(netSourceAmount, swapSourceAmount, swapDestinationAmount, direction)
	if err != nil {
		return types.SwapResult{}, err
	}
	if raw.DestinationAmountSwapped.IsZero() {
		return types.SwapResult{}, types.ErrZeroTradingTokens.Wrapf("input %s yields no output", sourceAmount)
	}
	if raw.DestinationAmountSwapped.GTE(swapDestinationAmount) {
		return types.SwapResult{}, types.ErrCalculationFailure.Wrapf(
			"input %s would drain the destination reserve %s", sourceAmount, swapDestinationAmount)
	}

	sourceAmountSwapped, err := raw.SourceAmountSwapped.Add(totalFees)
	if err != nil {
		return types.SwapResult{}, err
	}
	newSwapSourceAmount, err := swapSourceAmount.Add(sourceAmountSwapped)
	if err != nil {
		return types.SwapResult{}, err
	}
	newSwapDestinationAmount, err := swapDestinationAmount.Sub(raw.DestinationAmountSwapped)
	if err != nil {
		return types.SwapResult{}, err
	}

	return types.SwapResult{
		NewSwapSourceAmount:      newSwapSourceAmount,
		NewSwapDestinationAmount: newSwapDestinationAmount,
		SourceAmountSwapped:      sourceAmountSwapped,
		DestinationAmountSwapped: raw.DestinationAmountSwapped,
		TradeFee:                 tradeFee,
		OwnerFee:                 ownerFee,
	}, nil
}

// DepositSingleTokenType charges the trading fees on half of sourceAmount,
// the half that is implicitly swapped into the other token, and mints
// against what is left. The result rounds down.
func (s SwapCurve) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, fees types.Fees) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}

	halfSourceAmount, err := sourceAmount.Quo(types.NewUint(2))
	if err != nil {
		return types.Uint{}, err
	}
	halfSourceAmount = types.MaxUint(halfSourceAmount, types.OneUint())

	tradeFee, err := fees.TradingFee(halfSourceAmount)
	if err != nil {
		return types.Uint{}, feeFailure(err)
	}
	ownerFee, err := fees.OwnerTradingFee(halfSourceAmount)
	if err != nil {
		return types.Uint{}, feeFailure(err)
	}
	totalFees, err := tradeFee.Add(ownerFee)
	if err != nil {
		return types.Uint{}, feeFailure(err)
	}
	netSourceAmount, err := sourceAmount.Sub(totalFees)
	if err != nil {
		return types.Uint{}, types.ErrZeroTradingTokens.Wrapf(
			"fees %s consume the whole deposit %s", totalFees, sourceAmount)
	}

	return s.Calculator.DepositSingleTokenType(netSourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, direction, types.RoundFloor)
}

// WithdrawSingleTokenTypeExactOut grosses up half of sourceAmount by the
// trading fees and burns against the result. The result rounds up.
func (s SwapCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, fees types.Fees) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}

	halfSourceAmount, err := sourceAmount.Add(types.OneUint())
	if err != nil {
		return types.Uint{}, err
	}
	if halfSourceAmount, err = halfSourceAmount.Quo(types.NewUint(2)); err != nil {
		return types.Uint{}, err
	}
	preFeeHalf, err := fees.PreTradingFeeAmount(halfSourceAmount)
	if err != nil {
		return types.Uint{}, feeFailure(err)
	}

	grossSourceAmount, err := sourceAmount.Sub(halfSourceAmount)
	if err != nil {
		return types.Uint{}, err
	}
	if grossSourceAmount, err = grossSourceAmount.Add(preFeeHalf); err != nil {
		return types.Uint{}, err
	}

	return s.Calculator.WithdrawSingleTokenTypeExactOut(grossSourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply, direction, types.RoundCeiling)
}

func (s SwapCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	return s.Calculator.PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount, round)
}

func (s SwapCurve) NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	return s.Calculator.NormalizedValue(swapTokenAAmount, swapTokenBAmount)
}

func (s SwapCurve) ValidateSupply(tokenAAmount, tokenBAmount types.Uint) error {
	return s.Calculator.ValidateSupply(tokenAAmount, tokenBAmount)
}

func (s SwapCurve) AllowsDeposits() bool {
	return s.Calculator.AllowsDeposits()
}

func (s SwapCurve) NewPoolSupply() types.Uint {
	return s.Calculator.NewPoolSupply()
}

// feeFailure reports any fee error as ErrFeeCalculationFailure while
// keeping an error that already carries that code unchanged.
func feeFailure(err error) error {
	if sdkerrors.IsOf(err, types.ErrFeeCalculationFailure) {
		return err
	}
	return sdkerrors.Wrap(types.ErrFeeCalculationFailure, err.Error())
}

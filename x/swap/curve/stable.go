package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// stableCoins is the number of tokens in a pool.
const stableCoins = 2

// StableCurve is the two-token StableSwap invariant. It behaves like a
// constant sum near balance and like a constant product far from it, with
// Amp controlling how wide the flat region is.
type StableCurve struct {
	Amp    uint64
	Solver SolverParams
}

var _ Calculator = StableCurve{}

// NewStableCurve returns a stable curve using the default solver bounds.
func NewStableCurve(amp uint64) StableCurve {
	return StableCurve{Amp: amp, Solver: DefaultSolverParams()}
}

func (StableCurve) isCalculator() {}

func (StableCurve) CurveType() types.CurveType {
	return types.CurveTypeStable
}

func (c StableCurve) leverage() types.Uint {
	return types.NewUint(c.Amp * stableCoins)
}

// SwapWithoutFees takes the whole input and pays out the drop in the
// destination reserve that keeps D constant.
func (c StableCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint, _ types.TradeDirection) (types.SwapWithoutFeesResult, error) {
	leverage := c.leverage()

	d, err := c.computeD(leverage, swapSourceAmount, swapDestinationAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}
	newSwapSourceAmount, err := swapSourceAmount.Add(sourceAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}
	newSwapDestinationAmount, err := c.computeNewDestinationAmount(leverage, newSwapSourceAmount, d)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}
	if newSwapDestinationAmount.GTE(swapDestinationAmount) {
		return types.SwapWithoutFeesResult{}, types.ErrZeroTradingTokens.Wrapf("input %s yields no output", sourceAmount)
	}

	destinationAmountSwapped, err := swapDestinationAmount.Sub(newSwapDestinationAmount)
	if err != nil {
		return types.SwapWithoutFeesResult{}, err
	}
	return types.SwapWithoutFeesResult{
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

func (StableCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	return proportionalTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount, round)
}

// DepositSingleTokenType mints supply * (D1 - D0) / D0.
func (c StableCurve) DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}
	leverage := c.leverage()

	d0, err := c.computeD(leverage, swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return types.Uint{}, err
	}
	depositReserve, otherReserve := swapTokenAAmount, swapTokenBAmount
	if direction == types.BtoA {
		depositReserve, otherReserve = swapTokenBAmount, swapTokenAAmount
	}
	updated, err := depositReserve.Add(sourceAmount)
	if err != nil {
		return types.Uint{}, err
	}
	d1, err := c.computeD(leverage, updated, otherReserve)
	if err != nil {
		return types.Uint{}, err
	}

	diff, err := d1.Sub(d0)
	if err != nil {
		return types.Uint{}, err
	}
	return diff.MulDiv(poolSupply, d0, round)
}

// WithdrawSingleTokenTypeExactOut burns supply * (D0 - D1) / D0.
func (c StableCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error) {
	if sourceAmount.IsZero() {
		return types.ZeroUint(), nil
	}
	leverage := c.leverage()

	d0, err := c.computeD(leverage, swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return types.Uint{}, err
	}
	withdrawReserve, otherReserve := swapTokenAAmount, swapTokenBAmount
	if direction == types.BtoA {
		withdrawReserve, otherReserve = swapTokenBAmount, swapTokenAAmount
	}
	updated, err := withdrawReserve.Sub(sourceAmount)
	if err != nil {
		return types.Uint{}, err
	}
	d1, err := c.computeD(leverage, updated, otherReserve)
	if err != nil {
		return types.Uint{}, err
	}

	diff, err := d0.Sub(d1)
	if err != nil {
		return types.Uint{}, err
	}
	return diff.MulDiv(poolSupply, d0, round)
}

// NormalizedValue is the invariant D itself.
func (c StableCurve) NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error) {
	d, err := c.computeD(c.leverage(), swapTokenAAmount, swapTokenBAmount)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if d.BitLen() > maxDecimalBits {
		return math.LegacyDec{}, types.ErrCalculationFailure.Wrapf("%s is too large for a decimal value", d)
	}
	return d.LegacyDec(), nil
}

func (c StableCurve) Validate() error {
	if c.Amp < types.MinAmp || c.Amp > types.MaxAmp {
		return types.ErrInvalidCurve.Wrapf("amplification %d outside [%d, %d]", c.Amp, types.MinAmp, types.MaxAmp)
	}
	return c.Solver.Validate()
}

func (StableCurve) ValidateSupply(tokenAAmount, tokenBAmount types.Uint) error {
	return validateBothSidesSupplied(tokenAAmount, tokenBAmount)
}

func (StableCurve) AllowsDeposits() bool {
	return true
}

func (StableCurve) NewPoolSupply() types.Uint {
	return newPoolSupply()
}

// computeD solves the invariant for D by Newton's method, starting from the
// reserve sum:
//
//	Dp = D * D / (2a + 1) * D / (2b + 1)
//	D' = (lev * S + 2 * Dp) * D / ((lev - 1) * D + 3 * Dp)
func (c StableCurve) computeD(leverage, amountA, amountB types.Uint) (types.Uint, error) {
	sum, err := amountA.Add(amountB)
	if err != nil {
		return types.Uint{}, err
	}
	if sum.IsZero() {
		return types.ZeroUint(), nil
	}

	scaledA, err := coinsPlusOne(amountA)
	if err != nil {
		return types.Uint{}, err
	}
	scaledB, err := coinsPlusOne(amountB)
	if err != nil {
		return types.Uint{}, err
	}
	leverageSum, err := leverage.Mul(sum)
	if err != nil {
		return types.Uint{}, err
	}
	leverageLessOne, err := leverage.Sub(types.OneUint())
	if err != nil {
		return types.Uint{}, err
	}

	return c.iterate("invariant D", sum, func(d types.Uint) (types.Uint, error) {
		dProduct, err := d.MulDiv(d, scaledA, types.RoundFloor)
		if err != nil {
			return types.Uint{}, err
		}
		if dProduct, err = dProduct.MulDiv(d, scaledB, types.RoundFloor); err != nil {
			return types.Uint{}, err
		}

		doubled, err := dProduct.Mul(types.NewUint(stableCoins))
		if err != nil {
			return types.Uint{}, err
		}
		numerator, err := leverageSum.Add(doubled)
		if err != nil {
			return types.Uint{}, err
		}
		if numerator, err = numerator.Mul(d); err != nil {
			return types.Uint{}, err
		}

		left, err := d.Mul(leverageLessOne)
		if err != nil {
			return types.Uint{}, err
		}
		tripled, err := dProduct.Mul(types.NewUint(stableCoins + 1))
		if err != nil {
			return types.Uint{}, err
		}
		denominator, err := left.Add(tripled)
		if err != nil {
			return types.Uint{}, err
		}
		return numerator.Quo(denominator)
	})
}

// computeNewDestinationAmount solves y^2 + (b - D) * y = c for the
// destination reserve y that keeps D with source reserve x:
//
//	c  = D^3 / (4 * x * lev)
//	b  = x + D / lev
//	y' = ceil((y^2 + c) / (2y + b - D))
func (c StableCurve) computeNewDestinationAmount(leverage, newSourceAmount, d types.Uint) (types.Uint, error) {
	dSquared, err := d.Mul(d)
	if err != nil {
		return types.Uint{}, err
	}
	dCubed, err := dSquared.Mul(d)
	if err != nil {
		return types.Uint{}, err
	}
	scaledSource, err := newSourceAmount.Mul(types.NewUint(stableCoins * stableCoins))
	if err != nil {
		return types.Uint{}, err
	}
	if scaledSource, err = scaledSource.Mul(leverage); err != nil {
		return types.Uint{}, err
	}
	cTerm, err := dCubed.Quo(scaledSource)
	if err != nil {
		return types.Uint{}, err
	}
	dOverLeverage, err := d.Quo(leverage)
	if err != nil {
		return types.Uint{}, err
	}
	bTerm, err := newSourceAmount.Add(dOverLeverage)
	if err != nil {
		return types.Uint{}, err
	}

	return c.iterate("destination reserve", d, func(y types.Uint) (types.Uint, error) {
		ySquared, err := y.Mul(y)
		if err != nil {
			return types.Uint{}, err
		}
		numerator, err := ySquared.Add(cTerm)
		if err != nil {
			return types.Uint{}, err
		}
		doubled, err := y.Mul(types.NewUint(stableCoins))
		if err != nil {
			return types.Uint{}, err
		}
		denominator, err := doubled.Add(bTerm)
		if err != nil {
			return types.Uint{}, err
		}
		if denominator, err = denominator.Sub(d); err != nil {
			return types.Uint{}, err
		}
		next, _, err := numerator.CeilDiv(denominator)
		return next, err
	})
}

// iterate applies step until two successive values are within the solver
// tolerance. Running out of iterations is an error.
func (c StableCurve) iterate(what string, start types.Uint, step func(types.Uint) (types.Uint, error)) (types.Uint, error) {
	tolerance := types.NewUint(c.Solver.Tolerance)

	current := start
	for i := uint32(0); i < c.Solver.MaxIterations; i++ {
		next, err := step(current)
		if err != nil {
			return types.Uint{}, err
		}
		if next.AbsDiff(current).LTE(tolerance) {
			return next, nil
		}
		current = next
	}
	return types.Uint{}, types.ErrCalculationFailure.Wrapf(
		"%s did not converge in %d iterations (amp %d)", what, c.Solver.MaxIterations, c.Amp)
}

func coinsPlusOne(amount types.Uint) (types.Uint, error) {
	scaled, err := amount.Mul(types.NewUint(stableCoins))
	if err != nil {
		return types.Uint{}, err
	}
	return scaled.Add(types.OneUint())
}

package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Calculator is the invariant math of one curve kind. The set of
// implementations is closed: ConstantProductCurve, ConstantPriceCurve,
// StableCurve and OffsetCurve. Calculators hold only immutable
// configuration and are safe for concurrent use.
type Calculator interface {
	// CurveType returns the discriminant this calculator was built from.
	CurveType() types.CurveType

	// SwapWithoutFees solves the invariant for sourceAmount of input, which
	// is already net of fees.
	SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount types.Uint, direction types.TradeDirection) (types.SwapWithoutFeesResult, error)

	// PoolTokensToTradingTokens converts pool tokens to the proportional
	// amounts of both reserves.
	PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error)

	// DepositSingleTokenType returns the pool tokens worth sourceAmount of
	// the token selected by direction.
	DepositSingleTokenType(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error)

	// WithdrawSingleTokenTypeExactOut returns the pool tokens to burn for
	// exactly sourceAmount of the token selected by direction.
	WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenAAmount, swapTokenBAmount, poolSupply types.Uint, direction types.TradeDirection, round types.RoundDirection) (types.Uint, error)

	// NormalizedValue values the pool's reserves in a curve-specific unit
	// that is comparable across states of the same pool.
	NormalizedValue(swapTokenAAmount, swapTokenBAmount types.Uint) (math.LegacyDec, error)

	Validate() error
	ValidateSupply(tokenAAmount, tokenBAmount types.Uint) error
	AllowsDeposits() bool
	NewPoolSupply() types.Uint

	isCalculator()
}

// SolverParams bounds the stable curve's iterative solves.
type SolverParams struct {
	// MaxIterations caps each Newton or fixed-point loop.
	MaxIterations uint32 `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations"`
	// Tolerance is the largest step between iterations that counts as
	// converged.
	Tolerance uint64 `json:"tolerance" yaml:"tolerance" mapstructure:"tolerance"`
}

// DefaultSolverParams returns 32 iterations and a tolerance of one unit.
func DefaultSolverParams() SolverParams {
	return SolverParams{
		MaxIterations: 32,
		Tolerance:     1,
	}
}

// Validate requires at least one iteration.
func (p SolverParams) Validate() error {
	if p.MaxIterations == 0 {
		return types.ErrInvalidCurve.Wrap("stable solver needs at least one iteration")
	}
	return nil
}

func newPoolSupply() types.Uint {
	return types.NewUint(types.InitialSwapPoolAmount)
}

// proportionalTradingTokens is the pool token conversion shared by every
// curve. Ceiling is a true ceiling, so a depositor never pays less than the
// exact share.
func proportionalTradingTokens(poolTokens, poolTokenSupply, swapTokenAAmount, swapTokenBAmount types.Uint, round types.RoundDirection) (types.TradingTokensResult, error) {
	if poolTokenSupply.IsZero() {
		return types.TradingTokensResult{}, types.ErrEmptySupply.Wrap("pool token supply is zero")
	}

	tokenAAmount, err := poolTokens.MulDiv(swapTokenAAmount, poolTokenSupply, round)
	if err != nil {
		return types.TradingTokensResult{}, err
	}
	tokenBAmount, err := poolTokens.MulDiv(swapTokenBAmount, poolTokenSupply, round)
	if err != nil {
		return types.TradingTokensResult{}, err
	}

	return types.TradingTokensResult{
		TokenAAmount: tokenAAmount,
		TokenBAmount: tokenBAmount,
	}, nil
}

func validateBothSidesSupplied(tokenAAmount, tokenBAmount types.Uint) error {
	if tokenAAmount.IsZero() {
		return types.ErrEmptySupply.Wrap("token A reserve is empty")
	}
	if tokenBAmount.IsZero() {
		return types.ErrEmptySupply.Wrap("token B reserve is empty")
	}
	return nil
}

func selectReserve(swapTokenAAmount, swapTokenBAmount types.Uint, direction types.TradeDirection) types.Uint {
	if direction == types.BtoA {
		return swapTokenBAmount
	}
	return swapTokenAAmount
}

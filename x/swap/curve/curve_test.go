package curve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

func u(v uint64) types.Uint {
	return types.NewUint(v)
}

func requireUint(t testing.TB, want uint64, got types.Uint) {
	t.Helper()
	require.Truef(t, u(want).Equal(got), "want %d, got %s", want, got)
}

func TestConstantProductSwapWithoutFees(t *testing.T) {
	c := curve.ConstantProductCurve{}

	result, err := c.SwapWithoutFees(u(100), u(1000), u(1000), types.AtoB)
	require.NoError(t, err)
	requireUint(t, 99, result.SourceAmountSwapped)
	requireUint(t, 90, result.DestinationAmountSwapped)

	// 1e6 / 1001 rounds up to the full reserve, so nothing leaves the pool
	_, err = c.SwapWithoutFees(u(1), u(1000), u(1000), types.AtoB)
	require.ErrorIs(t, err, types.ErrZeroTradingTokens)

	_, err = c.SwapWithoutFees(u(1), u(1000), u(1), types.AtoB)
	require.ErrorIs(t, err, types.ErrCalculationFailure)
}

func TestConstantProductLiquidity(t *testing.T) {
	c := curve.ConstantProductCurve{}
	supply := u(types.InitialSwapPoolAmount)

	minted, err := c.DepositSingleTokenType(u(100), u(1000), u(1000), supply, types.AtoB, types.RoundFloor)
	require.NoError(t, err)
	requireUint(t, 48_808_848, minted)

	burned, err := c.WithdrawSingleTokenTypeExactOut(u(100), u(1000), u(1000), supply, types.BtoA, types.RoundCeiling)
	require.NoError(t, err)
	requireUint(t, 51_316_702, burned)

	zero, err := c.DepositSingleTokenType(types.ZeroUint(), u(1000), u(1000), supply, types.AtoB, types.RoundFloor)
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	_, err = c.WithdrawSingleTokenTypeExactOut(u(1001), u(1000), u(1000), supply, types.AtoB, types.RoundCeiling)
	require.ErrorIs(t, err, types.ErrCalculationFailure)
}

func TestPoolTokensToTradingTokens(t *testing.T) {
	c := curve.ConstantProductCurve{}
	supply := u(types.InitialSwapPoolAmount)

	tests := []struct {
		name       string
		poolTokens uint64
		round      types.RoundDirection
		wantA      uint64
		wantB      uint64
	}{
		{"exact share", 100_000_000, types.RoundCeiling, 100, 100},
		{"one token rounds up", 1, types.RoundCeiling, 1, 1},
		{"one token rounds down", 1, types.RoundFloor, 0, 0},
		{"whole supply", types.InitialSwapPoolAmount, types.RoundFloor, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.PoolTokensToTradingTokens(u(tt.poolTokens), supply, u(1000), u(1000), tt.round)
			require.NoError(t, err)
			requireUint(t, tt.wantA, result.TokenAAmount)
			requireUint(t, tt.wantB, result.TokenBAmount)
		})
	}

	_, err := c.PoolTokensToTradingTokens(u(1), types.ZeroUint(), u(1000), u(1000), types.RoundFloor)
	require.ErrorIs(t, err, types.ErrEmptySupply)
}

func TestConstantProductNormalizedValue(t *testing.T) {
	value, err := curve.ConstantProductCurve{}.NormalizedValue(u(1000), u(1000))
	require.NoError(t, err)
	require.InDelta(t, 1000, value.MustFloat64(), 1e-9)

	value, err = curve.ConstantProductCurve{}.NormalizedValue(u(4), u(9))
	require.NoError(t, err)
	require.InDelta(t, 6, value.MustFloat64(), 1e-9)
}

func TestConstantPriceCurve(t *testing.T) {
	c := curve.ConstantPriceCurve{TokenBPrice: 2}

	result, err := c.SwapWithoutFees(u(5), u(100), u(100), types.AtoB)
	require.NoError(t, err)
	requireUint(t, 4, result.SourceAmountSwapped)
	requireUint(t, 2, result.DestinationAmountSwapped)

	result, err = c.SwapWithoutFees(u(3), u(100), u(100), types.BtoA)
	require.NoError(t, err)
	requireUint(t, 3, result.SourceAmountSwapped)
	requireUint(t, 6, result.DestinationAmountSwapped)

	_, err = c.SwapWithoutFees(u(1), u(100), u(100), types.AtoB)
	require.ErrorIs(t, err, types.ErrZeroTradingTokens)

	// pool is worth 10 + 5*2 = 20 token A
	minted, err := c.DepositSingleTokenType(u(2), u(10), u(5), u(1000), types.BtoA, types.RoundFloor)
	require.NoError(t, err)
	requireUint(t, 200, minted)

	burned, err := c.WithdrawSingleTokenTypeExactOut(u(3), u(10), u(5), u(1000), types.AtoB, types.RoundCeiling)
	require.NoError(t, err)
	requireUint(t, 150, burned)

	value, err := c.NormalizedValue(u(10), u(5))
	require.NoError(t, err)
	require.InDelta(t, 10, value.MustFloat64(), 1e-12)

	require.ErrorIs(t, curve.ConstantPriceCurve{}.Validate(), types.ErrInvalidCurve)
	require.NoError(t, c.ValidateSupply(u(10), types.ZeroUint()))
	require.NoError(t, c.ValidateSupply(types.ZeroUint(), u(10)))
	require.ErrorIs(t, c.ValidateSupply(types.ZeroUint(), types.ZeroUint()), types.ErrEmptySupply)
	require.True(t, c.AllowsDeposits())
}

func TestOffsetCurve(t *testing.T) {
	c := curve.OffsetCurve{TokenBOffset: 1000}

	a, b, err := c.EffectiveReserves(u(5), u(7))
	require.NoError(t, err)
	requireUint(t, 5, a)
	requireUint(t, 1007, b)

	// a pool seeded with token A only still prices token B
	result, err := c.SwapWithoutFees(u(100), types.ZeroUint(), u(1000), types.BtoA)
	require.NoError(t, err)
	requireUint(t, 99, result.SourceAmountSwapped)
	requireUint(t, 90, result.DestinationAmountSwapped)

	result, err = c.SwapWithoutFees(u(100), u(1000), types.ZeroUint(), types.AtoB)
	require.NoError(t, err)
	requireUint(t, 90, result.DestinationAmountSwapped)

	// withdrawals never pay out the virtual offset
	tokens, err := c.PoolTokensToTradingTokens(u(types.InitialSwapPoolAmount), u(types.InitialSwapPoolAmount), u(1000), types.ZeroUint(), types.RoundFloor)
	require.NoError(t, err)
	requireUint(t, 1000, tokens.TokenAAmount)
	require.True(t, tokens.TokenBAmount.IsZero())

	value, err := c.NormalizedValue(u(1000), types.ZeroUint())
	require.NoError(t, err)
	require.InDelta(t, 1000, value.MustFloat64(), 1e-9)

	require.False(t, c.AllowsDeposits())
	require.ErrorIs(t, curve.OffsetCurve{}.Validate(), types.ErrInvalidCurve)
	require.NoError(t, c.ValidateSupply(u(1), types.ZeroUint()))
	require.ErrorIs(t, c.ValidateSupply(types.ZeroUint(), u(1)), types.ErrEmptySupply)
}

func TestStableCurveSwap(t *testing.T) {
	c := curve.NewStableCurve(100)

	result, err := c.SwapWithoutFees(u(1000), u(1_000_000), u(1_000_000), types.AtoB)
	require.NoError(t, err)
	requireUint(t, 1000, result.SourceAmountSwapped)
	require.True(t, result.DestinationAmountSwapped.GTE(u(990)), result.DestinationAmountSwapped.String())
	require.True(t, result.DestinationAmountSwapped.LTE(u(1000)), result.DestinationAmountSwapped.String())

	// a higher amplification trades closer to one to one
	flat, err := curve.NewStableCurve(100).SwapWithoutFees(u(100), u(1000), u(1000), types.AtoB)
	require.NoError(t, err)
	curved, err := curve.NewStableCurve(1).SwapWithoutFees(u(100), u(1000), u(1000), types.AtoB)
	require.NoError(t, err)
	require.True(t, flat.DestinationAmountSwapped.GT(curved.DestinationAmountSwapped))
}

func TestStableCurveDoesNotConverge(t *testing.T) {
	c := curve.StableCurve{
		Amp:    1,
		Solver: curve.SolverParams{MaxIterations: 1, Tolerance: 1},
	}

	_, err := c.SwapWithoutFees(u(10), u(1), u(1_000_000_000), types.AtoB)
	require.ErrorIs(t, err, types.ErrCalculationFailure)
	require.ErrorContains(t, err, "did not converge")
	require.Equal(t, types.ArithmeticError, types.KindOf(err))

	_, err = c.NormalizedValue(u(1), u(1_000_000_000))
	require.ErrorIs(t, err, types.ErrCalculationFailure)
}

func TestStableCurveLiquidity(t *testing.T) {
	c := curve.NewStableCurve(100)
	supply := u(types.InitialSwapPoolAmount)

	value, err := c.NormalizedValue(u(1_000_000), u(1_000_000))
	require.NoError(t, err)
	require.InDelta(t, 2_000_000, value.MustFloat64(), 2)

	minted, err := c.DepositSingleTokenType(u(1000), u(1_000_000), u(1_000_000), supply, types.AtoB, types.RoundFloor)
	require.NoError(t, err)
	require.True(t, minted.GT(types.ZeroUint()))
	// depositing one side is worth at most its share of D
	require.True(t, minted.LTE(u(500_000)), minted.String())

	burned, err := c.WithdrawSingleTokenTypeExactOut(u(1000), u(1_000_000), u(1_000_000), supply, types.BtoA, types.RoundCeiling)
	require.NoError(t, err)
	require.True(t, burned.GTE(minted), "burned %s, minted %s", burned, minted)

	zero, err := c.WithdrawSingleTokenTypeExactOut(types.ZeroUint(), u(1), u(1), supply, types.AtoB, types.RoundCeiling)
	require.NoError(t, err)
	require.True(t, zero.IsZero())
}

func TestStableCurveValidate(t *testing.T) {
	tests := []struct {
		name  string
		curve curve.StableCurve
		valid bool
	}{
		{"default", curve.NewStableCurve(100), true},
		{"minimum amp", curve.NewStableCurve(types.MinAmp), true},
		{"maximum amp", curve.NewStableCurve(types.MaxAmp), true},
		{"zero amp", curve.NewStableCurve(0), false},
		{"amp too large", curve.NewStableCurve(types.MaxAmp + 1), false},
		{"no iterations", curve.StableCurve{Amp: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.curve.Validate()
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, types.ErrInvalidCurve)
		})
	}
}

func TestBuildCurve(t *testing.T) {
	tests := []struct {
		name    string
		input   types.CurveInput
		wantErr error
	}{
		{"constant product", types.CurveInput{CurveType: types.CurveTypeConstantProduct}, nil},
		{"constant price", types.CurveInput{CurveType: types.CurveTypeConstantPrice, CurveParameters: 5}, nil},
		{"stable", types.CurveInput{CurveType: types.CurveTypeStable, CurveParameters: 85}, nil},
		{"offset", types.CurveInput{CurveType: types.CurveTypeOffset, CurveParameters: 1000}, nil},
		{"zero price", types.CurveInput{CurveType: types.CurveTypeConstantPrice}, types.ErrInvalidCurve},
		{"zero amp", types.CurveInput{CurveType: types.CurveTypeStable}, types.ErrInvalidCurve},
		{"zero offset", types.CurveInput{CurveType: types.CurveTypeOffset}, types.ErrInvalidCurve},
		{"unknown", types.CurveInput{CurveType: types.CurveType(9)}, types.ErrUnsupportedCurveType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapCurve, err := curve.BuildCurve(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.input, swapCurve.Input())
			require.Equal(t, tt.input.CurveType, swapCurve.Calculator.CurveType())
			requireUint(t, types.InitialSwapPoolAmount, swapCurve.Calculator.NewPoolSupply())
		})
	}

	_, err := curve.BuildCurveWithSolver(
		types.CurveInput{CurveType: types.CurveTypeStable, CurveParameters: 10},
		curve.SolverParams{},
	)
	require.ErrorIs(t, err, types.ErrInvalidCurve)

	// solver bounds do not apply to the other curves
	_, err = curve.BuildCurveWithSolver(types.CurveInput{CurveType: types.CurveTypeConstantProduct}, curve.SolverParams{})
	require.NoError(t, err)
}

func TestSupportsDeposits(t *testing.T) {
	require.True(t, curve.SupportsDeposits(types.CurveTypeConstantProduct))
	require.True(t, curve.SupportsDeposits(types.CurveTypeConstantPrice))
	require.True(t, curve.SupportsDeposits(types.CurveTypeStable))
	require.False(t, curve.SupportsDeposits(types.CurveTypeOffset))
	require.False(t, curve.SupportsDeposits(types.CurveType(9)))
}

func TestSwapCurveSwap(t *testing.T) {
	swapCurve, err := curve.BuildCurve(types.CurveInput{CurveType: types.CurveTypeConstantProduct})
	require.NoError(t, err)

	t.Run("no fees", func(t *testing.T) {
		result, err := swapCurve.Swap(u(100), u(1000), u(1000), types.AtoB, types.Fees{})
		require.NoError(t, err)
		requireUint(t, 99, result.SourceAmountSwapped)
		requireUint(t, 90, result.DestinationAmountSwapped)
		requireUint(t, 1099, result.NewSwapSourceAmount)
		requireUint(t, 910, result.NewSwapDestinationAmount)
		require.True(t, result.TradeFee.IsZero())
	})

	t.Run("minimum trade fee", func(t *testing.T) {
		// 100 * 3/1000 floors to zero, so both rates charge the one-unit minimum
		for _, fraction := range []types.Fraction{types.NewFraction(1, 1000), types.NewFraction(3, 1000)} {
			result, err := swapCurve.Swap(u(100), u(1000), u(1000), types.AtoB, types.Fees{TradeFee: fraction})
			require.NoError(t, err, fraction)
			requireUint(t, 1, result.TradeFee)
			requireUint(t, 100, result.SourceAmountSwapped)
			requireUint(t, 90, result.DestinationAmountSwapped)
			requireUint(t, 1100, result.NewSwapSourceAmount)
			requireUint(t, 910, result.NewSwapDestinationAmount)

			total, err := result.TotalFees()
			require.NoError(t, err)
			requireUint(t, 1, total)
		}
	})

	t.Run("owner fee", func(t *testing.T) {
		fees := types.Fees{
			TradeFee:      types.NewFraction(25, 10_000),
			OwnerTradeFee: types.NewFraction(5, 10_000),
		}
		result, err := swapCurve.Swap(u(10_000), u(1_000_000), u(1_000_000), types.BtoA, fees)
		require.NoError(t, err)
		requireUint(t, 25, result.TradeFee)
		requireUint(t, 5, result.OwnerFee)
	})

	t.Run("zero input", func(t *testing.T) {
		_, err := swapCurve.Swap(types.ZeroUint(), u(1000), u(1000), types.AtoB, types.Fees{})
		require.ErrorIs(t, err, types.ErrZeroTradingTokens)
	})

	t.Run("stable output never drains the reserve", func(t *testing.T) {
		stable, err := curve.BuildCurve(types.CurveInput{CurveType: types.CurveTypeStable, CurveParameters: 1})
		require.NoError(t, err)

		_, err = stable.Swap(u(1_000_000), u(1), u(10), types.AtoB, types.Fees{})
		require.ErrorIs(t, err, types.ErrCalculationFailure)
		require.ErrorContains(t, err, "drain")
	})

	t.Run("fees consume the input", func(t *testing.T) {
		fees := types.Fees{TradeFee: types.NewFraction(1, 2), OwnerTradeFee: types.NewFraction(1, 2)}
		_, err := swapCurve.Swap(u(1), u(1000), u(1000), types.AtoB, fees)
		require.ErrorIs(t, err, types.ErrZeroTradingTokens)
	})
}

func TestSwapCurveSingleSidedLiquidity(t *testing.T) {
	swapCurve, err := curve.BuildCurve(types.CurveInput{CurveType: types.CurveTypeConstantProduct})
	require.NoError(t, err)
	supply := u(types.InitialSwapPoolAmount)

	minted, err := swapCurve.DepositSingleTokenType(u(100), u(1000), u(1000), supply, types.AtoB, types.Fees{})
	require.NoError(t, err)
	requireUint(t, 48_808_848, minted)

	burned, err := swapCurve.WithdrawSingleTokenTypeExactOut(u(100), u(1000), u(1000), supply, types.AtoB, types.Fees{})
	require.NoError(t, err)
	requireUint(t, 51_316_702, burned)

	fees := types.Fees{TradeFee: types.NewFraction(25, 10_000)}
	mintedWithFee, err := swapCurve.DepositSingleTokenType(u(100), u(1000), u(1000), supply, types.AtoB, fees)
	require.NoError(t, err)
	require.True(t, mintedWithFee.LT(minted))

	burnedWithFee, err := swapCurve.WithdrawSingleTokenTypeExactOut(u(100), u(1000), u(1000), supply, types.AtoB, fees)
	require.NoError(t, err)
	require.True(t, burnedWithFee.GT(burned))

	zero, err := swapCurve.DepositSingleTokenType(types.ZeroUint(), u(1000), u(1000), supply, types.AtoB, fees)
	require.NoError(t, err)
	require.True(t, zero.IsZero())
}

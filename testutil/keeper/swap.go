package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// SwapKeeper creates an unconstrained test keeper for the swap module
func SwapKeeper(t testing.TB) (*keeper.Keeper, context.Context) {
	t.Helper()
	return SwapKeeperWithConstraints(t, nil)
}

// SwapKeeperWithConstraints creates a test keeper with deployment constraints
func SwapKeeperWithConstraints(t testing.TB, constraints *types.SwapConstraints) (*keeper.Keeper, context.Context) {
	t.Helper()
	k := keeper.NewKeeper(log.NewNopLogger(), constraints, curve.DefaultSolverParams())
	return k, context.Background()
}

// CreateTestPool initializes a pool with the given curve, fees and reserves
// and returns the resulting snapshot.
func CreateTestPool(t testing.TB, k *keeper.Keeper, ctx context.Context, input types.CurveInput, fees types.Fees, reserveA, reserveB uint64) types.Pool {
	t.Helper()

	plan, err := k.Initialize(ctx, types.InitializeRequest{
		Curve:    input,
		Fees:     fees,
		ReserveA: reserveA,
		ReserveB: reserveB,
	})
	require.NoError(t, err)
	return plan.Pool
}

// DefaultTestFees returns a 0.25% trade fee, a 0.05% owner trade fee, a
// 0.1% owner withdraw fee and a 20% host fee.
func DefaultTestFees() types.Fees {
	return types.Fees{
		TradeFee:         types.NewFraction(25, 10_000),
		OwnerTradeFee:    types.NewFraction(5, 10_000),
		OwnerWithdrawFee: types.NewFraction(1, 1_000),
		HostFee:          types.NewFraction(20, 100),
	}
}

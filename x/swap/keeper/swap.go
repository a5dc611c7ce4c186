package keeper

import (
	"context"
	"time"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// Swap plans a trade of req.AmountIn against the pool. The owner trade fee
// stays in the pool and is paid to the owner as newly minted pool tokens,
// part of which goes to the host when req.HostFeeEnabled is set.
func (k Keeper) Swap(ctx context.Context, pool types.Pool, req types.SwapRequest) (plan types.SwapPlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "swap")
	defer span.End()
	defer k.observe(span, "swap", pool.Curve.CurveType, time.Now(), &err)

	if err = req.Direction.Validate(); err != nil {
		return plan, err
	}
	swapCurve, err := k.loadPool(pool)
	if err != nil {
		return plan, err
	}

	swapSource, swapDestination := pool.SwapReserves(req.Direction)
	result, err := swapCurve.Swap(types.NewUint(req.AmountIn), swapSource, swapDestination, req.Direction, pool.Fees)
	if err != nil {
		return plan, err
	}
	if result.DestinationAmountSwapped.LT(types.NewUint(req.MinimumAmountOut)) {
		return plan, types.ErrExceededSlippage.Wrapf("output %s is below the minimum %d",
			result.DestinationAmountSwapped, req.MinimumAmountOut)
	}

	newReserveA, newReserveB := result.NewSwapSourceAmount, result.NewSwapDestinationAmount
	if req.Direction == types.BtoA {
		newReserveA, newReserveB = newReserveB, newReserveA
	}

	ownerFeePoolTokens, hostFeePoolTokens := types.ZeroUint(), types.ZeroUint()
	if !result.OwnerFee.IsZero() {
		ownerFeePoolTokens, err = swapCurve.Calculator.WithdrawSingleTokenTypeExactOut(
			result.OwnerFee, newReserveA, newReserveB, pool.Supply(), req.Direction, types.RoundFloor)
		if err != nil {
			return plan, err
		}
		if req.HostFeeEnabled && !ownerFeePoolTokens.IsZero() {
			if hostFeePoolTokens, err = pool.Fees.HostFeeAmount(ownerFeePoolTokens); err != nil {
				return plan, err
			}
			if ownerFeePoolTokens, err = ownerFeePoolTokens.Sub(hostFeePoolTokens); err != nil {
				return plan, err
			}
		}
	}

	newSupply, err := pool.Supply().Add(ownerFeePoolTokens)
	if err != nil {
		return plan, err
	}
	if newSupply, err = newSupply.Add(hostFeePoolTokens); err != nil {
		return plan, err
	}

	var balanceA, balanceB, supply uint64
	plan.Direction = req.Direction
	values := []struct {
		name string
		in   types.Uint
		out  *uint64
	}{
		{"amount in", result.SourceAmountSwapped, &plan.AmountIn},
		{"amount out", result.DestinationAmountSwapped, &plan.AmountOut},
		{"trade fee", result.TradeFee, &plan.TradeFee},
		{"owner fee", result.OwnerFee, &plan.OwnerFee},
		{"owner fee pool tokens", ownerFeePoolTokens, &plan.OwnerFeePoolTokens},
		{"host fee pool tokens", hostFeePoolTokens, &plan.HostFeePoolTokens},
		{"reserve a", newReserveA, &balanceA},
		{"reserve b", newReserveB, &balanceB},
		{"pool supply", newSupply, &supply},
	}
	for _, v := range values {
		if *v.out, err = toUint64(v.name, v.in); err != nil {
			return types.SwapPlan{}, err
		}
	}
	plan.Pool = pool.WithBalances(balanceA, balanceB, supply)

	if err = k.ValidateInvariant(swapCurve, pool, plan.Pool); err != nil {
		return types.SwapPlan{}, err
	}

	curveLabel := pool.Curve.CurveType.String()
	k.metrics.SwapVolume.WithLabelValues(curveLabel, req.Direction.String()).Add(float64(plan.AmountIn))
	k.metrics.SwapFeesCollected.WithLabelValues(curveLabel, "trade").Add(float64(plan.TradeFee))
	k.metrics.SwapFeesCollected.WithLabelValues(curveLabel, "owner").Add(float64(plan.OwnerFee))
	k.metrics.PoolTokensMinted.WithLabelValues("swap").Add(float64(plan.OwnerFeePoolTokens + plan.HostFeePoolTokens))

	return plan, nil
}

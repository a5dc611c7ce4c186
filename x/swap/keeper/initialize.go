package keeper

import (
	"context"
	"time"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// Initialize validates a new pool and plans its first pool token mint.
func (k Keeper) Initialize(ctx context.Context, req types.InitializeRequest) (plan types.InitializePlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "initialize")
	defer span.End()
	defer k.observe(span, "initialize", req.Curve.CurveType, time.Now(), &err)

	swapCurve, err := k.BuildCurve(req.Curve)
	if err != nil {
		return plan, err
	}
	if err = req.Fees.Validate(); err != nil {
		return plan, err
	}

	if err = k.constraints.ValidateOwner(req.FeeOwner); err != nil {
		return plan, err
	}
	if err = k.constraints.ValidateCurve(req.Curve.CurveType); err != nil {
		return plan, err
	}
	if err = k.constraints.ValidateFees(req.Fees); err != nil {
		return plan, err
	}

	if req.PoolMintSupply != 0 {
		return plan, types.ErrInvalidSupply.Wrapf("pool token supply is %d", req.PoolMintSupply)
	}
	if err = swapCurve.ValidateSupply(types.NewUint(req.ReserveA), types.NewUint(req.ReserveB)); err != nil {
		return plan, err
	}

	minted, err := toUint64("initial pool supply", swapCurve.NewPoolSupply())
	if err != nil {
		return plan, err
	}
	k.metrics.PoolTokensMinted.WithLabelValues("initialize").Add(float64(minted))

	return types.InitializePlan{
		PoolTokensMinted: minted,
		Pool: types.Pool{
			Curve:      swapCurve.Input(),
			Fees:       req.Fees,
			ReserveA:   req.ReserveA,
			ReserveB:   req.ReserveB,
			PoolSupply: minted,
		},
	}, nil
}

package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// NormalizedValue values the pool's reserves with its curve.
func (k Keeper) NormalizedValue(ctx context.Context, pool types.Pool) (value math.LegacyDec, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "normalized_value")
	defer span.End()
	defer k.observe(span, "normalized_value", pool.Curve.CurveType, time.Now(), &err)

	swapCurve, err := k.loadPool(pool)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveA, reserveB := pool.Reserves()
	return swapCurve.NormalizedValue(reserveA, reserveB)
}

package keeper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// ValidateInvariant checks that an operation did not shrink the curve
// invariant. Constant product pools compare reserveA * reserveB, offset
// pools compare the same product on the effective reserves. Other curves
// have no closed-form invariant to compare and pass.
func (k Keeper) ValidateInvariant(swapCurve curve.SwapCurve, before, after types.Pool) error {
	var err error
	switch c := swapCurve.Calculator.(type) {
	case curve.ConstantProductCurve:
		oldA, oldB := before.Reserves()
		newA, newB := after.Reserves()
		err = validateConstantProduct(oldA, oldB, newA, newB)
	case curve.OffsetCurve:
		oldA, oldB, effErr := c.EffectiveReserves(before.Reserves())
		if effErr != nil {
			return effErr
		}
		newA, newB, effErr := c.EffectiveReserves(after.Reserves())
		if effErr != nil {
			return effErr
		}
		err = validateConstantProduct(oldA, oldB, newA, newB)
	}

	if err != nil {
		k.metrics.InvariantViolations.WithLabelValues(swapCurve.CurveType.String()).Inc()
		k.Logger().Error("curve invariant violated",
			"curve_type", swapCurve.CurveType.String(),
			"before", fmt.Sprintf("%d/%d", before.ReserveA, before.ReserveB),
			"after", fmt.Sprintf("%d/%d", after.ReserveA, after.ReserveB),
			"error", err,
		)
	}
	return err
}

// validateConstantProduct returns ErrInvariantViolation when the product of
// the new reserves is below the product of the old ones.
func validateConstantProduct(oldReserveA, oldReserveB, newReserveA, newReserveB types.Uint) error {
	oldK, err := oldReserveA.Mul(oldReserveB)
	if err != nil {
		return err
	}
	newK, err := newReserveA.Mul(newReserveB)
	if err != nil {
		return err
	}
	if newK.LT(oldK) {
		return types.ErrInvariantViolation.Wrapf("k decreased from %s to %s", oldK, newK)
	}
	return nil
}

// CheckPool runs every static check on a pool snapshot and reports all
// broken ones, in the style of a module invariant: a message and whether
// the pool is broken.
func (k Keeper) CheckPool(ctx context.Context, pool types.Pool) (msg string, broken bool) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "check_pool")
	defer span.End()

	var (
		problems []string
		start    = time.Now()
		err      error
	)
	defer func() {
		if broken {
			err = types.ErrInvariantViolation.Wrap(msg)
		}
		k.observe(span, "check_pool", pool.Curve.CurveType, start, &err)
	}()

	swapCurve, buildErr := k.loadPool(pool)
	if buildErr != nil {
		problems = append(problems, fmt.Sprintf("configuration: %v", buildErr))
	}
	if constraintErr := k.constraints.ValidateCurve(pool.Curve.CurveType); constraintErr != nil {
		problems = append(problems, fmt.Sprintf("constraints: %v", constraintErr))
	}
	if feeErr := k.constraints.ValidateFees(pool.Fees); feeErr != nil {
		problems = append(problems, fmt.Sprintf("constraints: %v", feeErr))
	}

	if buildErr == nil {
		reserveA, reserveB := pool.Reserves()
		if supplyErr := swapCurve.ValidateSupply(reserveA, reserveB); supplyErr != nil {
			problems = append(problems, fmt.Sprintf("reserves: %v", supplyErr))
		}
		if pool.PoolSupply == 0 && (pool.ReserveA != 0 || pool.ReserveB != 0) {
			problems = append(problems, "pool tokens: reserves are held without any pool token supply")
		}
		if _, valueErr := swapCurve.NormalizedValue(reserveA, reserveB); valueErr != nil {
			problems = append(problems, fmt.Sprintf("normalized value: %v", valueErr))
		}
	}

	broken = len(problems) != 0
	msg = fmt.Sprintf("%s: found %d problems with pool\n%s", types.ModuleName, len(problems), strings.Join(problems, "\n"))
	return msg, broken
}

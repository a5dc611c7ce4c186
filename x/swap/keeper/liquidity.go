package keeper

import (
	"context"
	"time"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// DepositAllTokenTypes plans a deposit of both tokens in exchange for
// req.PoolTokenAmount. The token amounts round up. An empty pool mints the
// curve's initial supply instead of the requested amount.
func (k Keeper) DepositAllTokenTypes(ctx context.Context, pool types.Pool, req types.DepositAllRequest) (plan types.DepositPlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "deposit_all")
	defer span.End()
	defer k.observe(span, "deposit_all", pool.Curve.CurveType, time.Now(), &err)

	swapCurve, err := k.loadDepositPool(pool)
	if err != nil {
		return plan, err
	}

	poolTokenAmount, poolSupply := types.NewUint(req.PoolTokenAmount), pool.Supply()
	if poolSupply.IsZero() {
		poolTokenAmount, poolSupply = swapCurve.NewPoolSupply(), swapCurve.NewPoolSupply()
	}

	reserveA, reserveB := pool.Reserves()
	results, err := swapCurve.PoolTokensToTradingTokens(poolTokenAmount, poolSupply, reserveA, reserveB, types.RoundCeiling)
	if err != nil {
		return plan, err
	}

	if err = checkMaximum("token A", results.TokenAAmount, req.MaximumTokenAAmount); err != nil {
		return plan, err
	}
	if results.TokenAAmount.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrap("deposit needs zero token A")
	}
	if err = checkMaximum("token B", results.TokenBAmount, req.MaximumTokenBAmount); err != nil {
		return plan, err
	}
	if results.TokenBAmount.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrap("deposit needs zero token B")
	}

	newReserveA, err := reserveA.Add(results.TokenAAmount)
	if err != nil {
		return plan, err
	}
	newReserveB, err := reserveB.Add(results.TokenBAmount)
	if err != nil {
		return plan, err
	}
	newSupply, err := pool.Supply().Add(poolTokenAmount)
	if err != nil {
		return plan, err
	}

	if plan, err = newDepositPlan(pool, results.TokenAAmount, results.TokenBAmount, poolTokenAmount, newReserveA, newReserveB, newSupply); err != nil {
		return types.DepositPlan{}, err
	}
	k.metrics.PoolTokensMinted.WithLabelValues("deposit_all").Add(float64(plan.PoolTokensMinted))
	return plan, nil
}

// WithdrawAllTokenTypes plans burning req.PoolTokenAmount for both tokens.
// The owner withdraw fee is taken in pool tokens first, unless the pool
// tokens come from the owner's own fee account. Token amounts round down.
func (k Keeper) WithdrawAllTokenTypes(ctx context.Context, pool types.Pool, req types.WithdrawAllRequest) (plan types.WithdrawPlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "withdraw_all")
	defer span.End()
	defer k.observe(span, "withdraw_all", pool.Curve.CurveType, time.Now(), &err)

	swapCurve, err := k.loadDepositPool(pool)
	if err != nil {
		return plan, err
	}
	if req.PoolTokenAmount > pool.PoolSupply {
		return plan, types.ErrInvalidInput.Wrapf("pool token amount %d exceeds supply %d", req.PoolTokenAmount, pool.PoolSupply)
	}

	poolTokenAmount := types.NewUint(req.PoolTokenAmount)
	withdrawFee := types.ZeroUint()
	if !req.FromFeeAccount {
		if withdrawFee, err = pool.Fees.OwnerWithdrawFeeAmount(poolTokenAmount); err != nil {
			return plan, err
		}
	}
	burned, err := poolTokenAmount.Sub(withdrawFee)
	if err != nil {
		return plan, types.ErrZeroTradingTokens.Wrapf("withdraw fee %s consumes %s pool tokens", withdrawFee, poolTokenAmount)
	}

	reserveA, reserveB := pool.Reserves()
	results, err := swapCurve.PoolTokensToTradingTokens(burned, pool.Supply(), reserveA, reserveB, types.RoundFloor)
	if err != nil {
		return plan, err
	}

	tokenAAmount := types.MinUint(results.TokenAAmount, reserveA)
	if err = checkMinimum("token A", tokenAAmount, req.MinimumTokenAAmount); err != nil {
		return plan, err
	}
	if tokenAAmount.IsZero() && !reserveA.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrap("withdrawal pays zero token A")
	}
	tokenBAmount := types.MinUint(results.TokenBAmount, reserveB)
	if err = checkMinimum("token B", tokenBAmount, req.MinimumTokenBAmount); err != nil {
		return plan, err
	}
	if tokenBAmount.IsZero() && !reserveB.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrap("withdrawal pays zero token B")
	}

	if plan, err = newWithdrawPlan(pool, tokenAAmount, tokenBAmount, burned, withdrawFee); err != nil {
		return types.WithdrawPlan{}, err
	}
	k.metrics.PoolTokensBurned.WithLabelValues("withdraw_all").Add(float64(plan.PoolTokensBurned))
	return plan, nil
}

// DepositSingleTokenTypeExactAmountIn plans a deposit of req.SourceAmount of
// one token. Half of the deposit is treated as swapped and pays the trading
// fees.
func (k Keeper) DepositSingleTokenTypeExactAmountIn(ctx context.Context, pool types.Pool, req types.DepositSingleRequest) (plan types.DepositPlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "deposit_single")
	defer span.End()
	defer k.observe(span, "deposit_single", pool.Curve.CurveType, time.Now(), &err)

	if err = req.Token.Validate(); err != nil {
		return plan, err
	}
	swapCurve, err := k.loadDepositPool(pool)
	if err != nil {
		return plan, err
	}

	sourceAmount := types.NewUint(req.SourceAmount)
	reserveA, reserveB := pool.Reserves()

	var poolTokenAmount types.Uint
	if pool.Supply().IsZero() {
		poolTokenAmount = swapCurve.NewPoolSupply()
	} else {
		poolTokenAmount, err = swapCurve.DepositSingleTokenType(sourceAmount, reserveA, reserveB, pool.Supply(), req.Token, pool.Fees)
		if err != nil {
			return plan, err
		}
	}

	if poolTokenAmount.LT(types.NewUint(req.MinimumPoolTokenAmount)) {
		return plan, types.ErrExceededSlippage.Wrapf("minted %s pool tokens, below the minimum %d", poolTokenAmount, req.MinimumPoolTokenAmount)
	}
	if poolTokenAmount.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrapf("deposit of %s mints no pool tokens", sourceAmount)
	}

	tokenAAmount, tokenBAmount := sourceAmount, types.ZeroUint()
	if req.Token == types.BtoA {
		tokenAAmount, tokenBAmount = tokenBAmount, tokenAAmount
	}
	newReserveA, err := reserveA.Add(tokenAAmount)
	if err != nil {
		return plan, err
	}
	newReserveB, err := reserveB.Add(tokenBAmount)
	if err != nil {
		return plan, err
	}
	newSupply, err := pool.Supply().Add(poolTokenAmount)
	if err != nil {
		return plan, err
	}

	if plan, err = newDepositPlan(pool, tokenAAmount, tokenBAmount, poolTokenAmount, newReserveA, newReserveB, newSupply); err != nil {
		return types.DepositPlan{}, err
	}
	k.metrics.PoolTokensMinted.WithLabelValues("deposit_single").Add(float64(plan.PoolTokensMinted))
	return plan, nil
}

// WithdrawSingleTokenTypeExactAmountOut plans withdrawing exactly
// req.DestinationAmount of one token. The pool tokens required round up and
// the owner withdraw fee is charged on top.
func (k Keeper) WithdrawSingleTokenTypeExactAmountOut(ctx context.Context, pool types.Pool, req types.WithdrawSingleRequest) (plan types.WithdrawPlan, err error) {
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "withdraw_single")
	defer span.End()
	defer k.observe(span, "withdraw_single", pool.Curve.CurveType, time.Now(), &err)

	if err = req.Token.Validate(); err != nil {
		return plan, err
	}
	swapCurve, err := k.loadPool(pool)
	if err != nil {
		return plan, err
	}

	destinationAmount := types.NewUint(req.DestinationAmount)
	reserveA, reserveB := pool.Reserves()
	reserve := reserveA
	if req.Token == types.BtoA {
		reserve = reserveB
	}
	if destinationAmount.GTE(reserve) {
		return plan, types.ErrInvalidInput.Wrapf("withdrawing %s would drain the reserve of %s", destinationAmount, reserve)
	}

	burnAmount, err := swapCurve.WithdrawSingleTokenTypeExactOut(destinationAmount, reserveA, reserveB, pool.Supply(), req.Token, pool.Fees)
	if err != nil {
		return plan, err
	}
	withdrawFee := types.ZeroUint()
	if !req.FromFeeAccount {
		if withdrawFee, err = pool.Fees.OwnerWithdrawFeeAmount(burnAmount); err != nil {
			return plan, err
		}
	}
	poolTokenAmount, err := burnAmount.Add(withdrawFee)
	if err != nil {
		return plan, err
	}

	if poolTokenAmount.GT(types.NewUint(req.MaximumPoolTokenAmount)) {
		return plan, types.ErrExceededSlippage.Wrapf("needs %s pool tokens, above the maximum %d", poolTokenAmount, req.MaximumPoolTokenAmount)
	}
	if poolTokenAmount.IsZero() {
		return plan, types.ErrZeroTradingTokens.Wrapf("withdrawal of %s burns no pool tokens", destinationAmount)
	}
	if burnAmount.GT(pool.Supply()) {
		return plan, types.ErrInvalidInput.Wrapf("withdrawal burns %s of %s pool tokens", burnAmount, pool.Supply())
	}

	tokenAAmount, tokenBAmount := destinationAmount, types.ZeroUint()
	if req.Token == types.BtoA {
		tokenAAmount, tokenBAmount = tokenBAmount, tokenAAmount
	}
	if plan, err = newWithdrawPlan(pool, tokenAAmount, tokenBAmount, burnAmount, withdrawFee); err != nil {
		return types.WithdrawPlan{}, err
	}
	k.metrics.PoolTokensBurned.WithLabelValues("withdraw_single").Add(float64(plan.PoolTokensBurned))
	return plan, nil
}

// loadDepositPool builds the pool's curve and rejects curves that do not
// take deposits.
func (k Keeper) loadDepositPool(pool types.Pool) (curve.SwapCurve, error) {
	swapCurve, err := k.loadPool(pool)
	if err != nil {
		return curve.SwapCurve{}, err
	}
	if !swapCurve.AllowsDeposits() {
		return curve.SwapCurve{}, types.ErrUnsupportedCurveOperation.Wrapf("%s curve does not allow deposits", swapCurve.CurveType)
	}
	return swapCurve, nil
}

func checkMaximum(name string, amount types.Uint, maximum uint64) error {
	if amount.GT(types.NewUint(maximum)) {
		return types.ErrExceededSlippage.Wrapf("%s amount %s exceeds the maximum %d", name, amount, maximum)
	}
	return nil
}

func checkMinimum(name string, amount types.Uint, minimum uint64) error {
	if amount.LT(types.NewUint(minimum)) {
		return types.ErrExceededSlippage.Wrapf("%s amount %s is below the minimum %d", name, amount, minimum)
	}
	return nil
}

func newDepositPlan(pool types.Pool, tokenAAmount, tokenBAmount, minted, newReserveA, newReserveB, newSupply types.Uint) (types.DepositPlan, error) {
	var (
		plan                       types.DepositPlan
		balanceA, balanceB, supply uint64
	)
	values := []struct {
		name string
		in   types.Uint
		out  *uint64
	}{
		{"token A amount", tokenAAmount, &plan.TokenAAmount},
		{"token B amount", tokenBAmount, &plan.TokenBAmount},
		{"pool tokens minted", minted, &plan.PoolTokensMinted},
		{"reserve a", newReserveA, &balanceA},
		{"reserve b", newReserveB, &balanceB},
		{"pool supply", newSupply, &supply},
	}
	for _, v := range values {
		n, err := toUint64(v.name, v.in)
		if err != nil {
			return types.DepositPlan{}, err
		}
		*v.out = n
	}
	plan.Pool = pool.WithBalances(balanceA, balanceB, supply)
	return plan, nil
}

// newWithdrawPlan removes the paid-out tokens from the reserves and the
// burned pool tokens from the supply. The withdraw fee moves to the owner
// and stays in the supply.
func newWithdrawPlan(pool types.Pool, tokenAAmount, tokenBAmount, burned, withdrawFee types.Uint) (types.WithdrawPlan, error) {
	reserveA, reserveB := pool.Reserves()
	newReserveA, err := reserveA.Sub(tokenAAmount)
	if err != nil {
		return types.WithdrawPlan{}, err
	}
	newReserveB, err := reserveB.Sub(tokenBAmount)
	if err != nil {
		return types.WithdrawPlan{}, err
	}
	newSupply, err := pool.Supply().Sub(burned)
	if err != nil {
		return types.WithdrawPlan{}, types.ErrInvalidInput.Wrapf("burning %s exceeds supply %s", burned, pool.Supply())
	}

	var (
		plan                       types.WithdrawPlan
		balanceA, balanceB, supply uint64
	)
	values := []struct {
		name string
		in   types.Uint
		out  *uint64
	}{
		{"token A amount", tokenAAmount, &plan.TokenAAmount},
		{"token B amount", tokenBAmount, &plan.TokenBAmount},
		{"pool tokens burned", burned, &plan.PoolTokensBurned},
		{"withdraw fee pool tokens", withdrawFee, &plan.WithdrawFeePoolTokens},
		{"reserve a", newReserveA, &balanceA},
		{"reserve b", newReserveB, &balanceB},
		{"pool supply", newSupply, &supply},
	}
	for _, v := range values {
		n, err := toUint64(v.name, v.in)
		if err != nil {
			return types.WithdrawPlan{}, err
		}
		*v.out = n
	}
	plan.Pool = pool.WithBalances(balanceA, balanceB, supply)
	return plan, nil
}

package keeper

import (
	"time"

	"cosmossdk.io/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// Keeper plans pool operations. It never holds balances: every call takes a
// pool snapshot and returns the resulting plan, leaving custody and
// serialization of operations on one pool to the caller. A Keeper is safe
// for concurrent use.
type Keeper struct {
	logger      log.Logger
	constraints *types.SwapConstraints
	solver      curve.SolverParams
	metrics     *SwapMetrics
}

// NewKeeper creates a new swap Keeper instance. A nil constraints value
// allows every curve type and fee schedule.
func NewKeeper(
	logger log.Logger,
	constraints *types.SwapConstraints,
	solver curve.SolverParams,
) *Keeper {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		logger:      logger,
		constraints: constraints,
		solver:      solver,
		metrics:     NewSwapMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

// Constraints returns the deployment constraints, nil when unconstrained.
func (k Keeper) Constraints() *types.SwapConstraints {
	return k.constraints
}

// SolverParams returns the stable curve solver bounds.
func (k Keeper) SolverParams() curve.SolverParams {
	return k.solver
}

// BuildCurve builds the swap curve for a pool configuration using the
// keeper's solver bounds.
func (k Keeper) BuildCurve(input types.CurveInput) (curve.SwapCurve, error) {
	return curve.BuildCurveWithSolver(input, k.solver)
}

// loadPool validates a pool snapshot and builds its curve.
func (k Keeper) loadPool(pool types.Pool) (curve.SwapCurve, error) {
	if err := pool.Validate(); err != nil {
		return curve.SwapCurve{}, err
	}
	return k.BuildCurve(pool.Curve)
}

// observe records the outcome of one operation on its span, metrics and log.
// It is deferred with a pointer to the operation's named error result.
func (k Keeper) observe(span trace.Span, operation string, curveType types.CurveType, start time.Time, errp *error) {
	err := *errp
	curveLabel := curveType.String()

	status := "success"
	if err != nil {
		status = types.KindOf(err).String()
	}

	k.metrics.OperationsTotal.WithLabelValues(operation, curveLabel, status).Inc()
	k.metrics.OperationLatency.WithLabelValues(operation, curveLabel).Observe(time.Since(start).Seconds())
	telemetry.AddSpanAttributes(span,
		attribute.String("swap.curve_type", curveLabel),
		attribute.String("swap.status", status),
	)

	if err == nil {
		telemetry.SetSpanStatus(span, true, "")
		k.Logger().Debug("pool operation planned", "operation", operation, "curve_type", curveLabel)
		return
	}

	telemetry.RecordError(span, err)
	switch types.KindOf(err) {
	case types.ArithmeticError:
		k.metrics.CalculationFailures.WithLabelValues(curveLabel, operation).Inc()
		k.Logger().Error("pool operation failed", "operation", operation, "curve_type", curveLabel, "error", err)
	case types.SlippageError:
		k.metrics.SlippageRejections.WithLabelValues(operation).Inc()
		k.Logger().Info("pool operation rejected", "operation", operation, "curve_type", curveLabel, "error", err)
	default:
		k.Logger().Debug("pool operation rejected", "operation", operation, "curve_type", curveLabel, "error", err)
	}
	*errp = types.WrapWithRecovery(err, "%s", operation)
}

// toUint64 narrows a result that is handed back to the custody layer.
func toUint64(name string, v types.Uint) (uint64, error) {
	n, err := v.Uint64()
	if err != nil {
		return 0, types.ErrConversionFailure.Wrapf("%s %s does not fit in 64 bits", name, v)
	}
	return n, nil
}

package types

import (
	"errors"

	sdkerrors "cosmossdk.io/errors"
)

// Swap module sentinel errors
var (
	// Configuration errors
	ErrInvalidCurve         = sdkerrors.Register(ModuleName, 2, "invalid curve parameters")
	ErrUnsupportedCurveType = sdkerrors.Register(ModuleName, 3, "unsupported curve type")
	ErrInvalidFee           = sdkerrors.Register(ModuleName, 4, "invalid fee")

	// Degenerate operations
	ErrEmptySupply       = sdkerrors.Register(ModuleName, 5, "empty supply")
	ErrInvalidSupply     = sdkerrors.Register(ModuleName, 6, "pool token mint has a non-zero supply")
	ErrZeroTradingTokens = sdkerrors.Register(ModuleName, 7, "operation results in zero trading tokens")

	// Arithmetic errors
	ErrCalculationFailure    = sdkerrors.Register(ModuleName, 8, "calculation failure")
	ErrFeeCalculationFailure = sdkerrors.Register(ModuleName, 9, "fee calculation failure")
	ErrConversionFailure     = sdkerrors.Register(ModuleName, 10, "conversion to or from u64 failed")

	// Operation errors
	ErrExceededSlippage          = sdkerrors.Register(ModuleName, 11, "swap instruction exceeds desired slippage limit")
	ErrUnsupportedCurveOperation = sdkerrors.Register(ModuleName, 12, "operation not supported by curve")
	ErrInvalidInput              = sdkerrors.Register(ModuleName, 13, "invalid input")
	ErrInvariantViolation        = sdkerrors.Register(ModuleName, 14, "curve invariant violated")
	ErrInvalidOwner              = sdkerrors.Register(ModuleName, 15, "fee account owner does not match constraints")
)

// ErrorKind groups sentinel errors by how a caller should react to them.
type ErrorKind int

const (
	UnknownError ErrorKind = iota
	// ConfigurationError is detected when a curve, fee schedule or pool is
	// constructed, never in the middle of a computation.
	ConfigurationError
	// DegenerateOperationError marks a request whose result would move zero
	// tokens. It must be rejected outright.
	DegenerateOperationError
	// ArithmeticError covers overflow, underflow, division by zero and
	// non-convergence.
	ArithmeticError
	// SlippageError is returned when a result misses the caller's bound.
	SlippageError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration"
	case DegenerateOperationError:
		return "degenerate"
	case ArithmeticError:
		return "arithmetic"
	case SlippageError:
		return "slippage"
	default:
		return "unknown"
	}
}

// KindOf classifies err, following wrapped errors down to the sentinel.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return UnknownError
	case sdkerrors.IsOf(err, ErrInvalidCurve, ErrUnsupportedCurveType, ErrInvalidFee, ErrInvalidSupply,
		ErrUnsupportedCurveOperation, ErrInvalidInput, ErrInvalidOwner):
		return ConfigurationError
	case sdkerrors.IsOf(err, ErrEmptySupply, ErrZeroTradingTokens):
		return DegenerateOperationError
	case sdkerrors.IsOf(err, ErrCalculationFailure, ErrFeeCalculationFailure, ErrConversionFailure, ErrInvariantViolation):
		return ArithmeticError
	case sdkerrors.IsOf(err, ErrExceededSlippage):
		return SlippageError
	default:
		return UnknownError
	}
}

// ErrorWithRecovery wraps an error with recovery suggestions
type ErrorWithRecovery struct {
	Err      error
	Recovery string
}

func (e *ErrorWithRecovery) Error() string {
	return e.Err.Error()
}

func (e *ErrorWithRecovery) Unwrap() error {
	return e.Err
}

// Cause lets sdkerrors.ABCIInfo find the registered code underneath.
func (e *ErrorWithRecovery) Cause() error {
	return e.Err
}

// RecoverySuggestions provides actionable recovery steps for each error type
var RecoverySuggestions = map[error]string{
	ErrInvalidCurve:         "Check the curve parameter: constant price needs a non-zero token B price, stable needs an amplification between 1 and 1000000, offset needs a non-zero token B offset.",
	ErrUnsupportedCurveType: "Use one of the supported curve types (constant_product, constant_price, stable, offset) and make sure the deployment allows it.",
	ErrInvalidFee:           "Every fee fraction must be 0/0 or have a numerator strictly below a non-zero denominator. Constrained deployments also require the configured minimum fees.",

	ErrEmptySupply:       "The pool reserves or pool token supply are empty. Seed both reserves before trading or converting pool tokens.",
	ErrInvalidSupply:     "The pool token mint already has a supply. Initialize a pool only against a fresh pool token mint.",
	ErrZeroTradingTokens: "The request would move zero tokens. Increase the amount or check that the fees do not consume the whole input.",

	ErrCalculationFailure:    "An intermediate value overflowed, underflowed, divided by zero or failed to converge. Reduce the amount or check the pool reserves.",
	ErrFeeCalculationFailure: "Fee calculation failed. Check fee fractions and make sure the combined trade and owner fee is below 100%.",
	ErrConversionFailure:     "A result does not fit in 64 bits. Reduce the amount.",

	ErrExceededSlippage:          "The quoted amount is outside the requested bound. Refresh the quote or widen the slippage tolerance.",
	ErrUnsupportedCurveOperation: "The curve does not allow this operation. Offset curves only support swaps.",
	ErrInvalidInput:              "Check the request amounts against the pool reserves and pool token supply.",
	ErrInvariantViolation:        "The curve invariant decreased. This indicates a rounding bug; reject the operation and report it.",
	ErrInvalidOwner:              "The fee account owner must match the owner key configured in the swap constraints.",
}

// WrapWithRecovery wraps an error with recovery suggestion
func WrapWithRecovery(err error, msg string, args ...interface{}) error {
	wrapped := sdkerrors.Wrapf(err, msg, args...)

	if suggestion := lookupRecovery(err); suggestion != "" {
		return &ErrorWithRecovery{
			Err:      wrapped,
			Recovery: suggestion,
		}
	}

	return wrapped
}

// GetRecoverySuggestion returns the recovery suggestion for an error
func GetRecoverySuggestion(err error) string {
	if suggestion := lookupRecovery(err); suggestion != "" {
		return suggestion
	}

	return "No recovery suggestion available. Check error message for details."
}

func lookupRecovery(err error) string {
	// Unwrap to find the root error
	rootErr := err
	for {
		if unwrapped := errors.Unwrap(rootErr); unwrapped != nil {
			rootErr = unwrapped
		} else {
			break
		}
	}

	return RecoverySuggestions[rootErr]
}

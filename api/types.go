package api

import (
	"github.com/paw-chain/pawswap/x/swap/types"
)

// QuoteSwapRequest is the body of POST /api/v1/quote/swap
type QuoteSwapRequest struct {
	Pool types.Pool `json:"pool"`
	types.SwapRequest
}

// QuoteDepositRequest is the body of POST /api/v1/quote/deposit
type QuoteDepositRequest struct {
	Pool types.Pool `json:"pool"`
	types.DepositAllRequest
}

// QuoteWithdrawRequest is the body of POST /api/v1/quote/withdraw
type QuoteWithdrawRequest struct {
	Pool types.Pool `json:"pool"`
	types.WithdrawAllRequest
}

// QuoteDepositSingleRequest is the body of POST /api/v1/quote/deposit-single
type QuoteDepositSingleRequest struct {
	Pool types.Pool `json:"pool"`
	types.DepositSingleRequest
}

// QuoteWithdrawSingleRequest is the body of POST /api/v1/quote/withdraw-single
type QuoteWithdrawSingleRequest struct {
	Pool types.Pool `json:"pool"`
	types.WithdrawSingleRequest
}

// NormalizedValueRequest is the body of POST /api/v1/quote/normalized-value
type NormalizedValueRequest struct {
	Pool types.Pool `json:"pool"`
}

// NormalizedValueResponse carries the pool value as a decimal string
type NormalizedValueResponse struct {
	CurveType       types.CurveType `json:"curve_type"`
	NormalizedValue string          `json:"normalized_value"`
}

// CheckPoolResponse reports the result of the pool checks
type CheckPoolResponse struct {
	Broken  bool   `json:"broken"`
	Message string `json:"message"`
}

// CurveInfo describes one supported curve type
type CurveInfo struct {
	Name           string          `json:"name"`
	CurveType      types.CurveType `json:"curve_type"`
	Discriminant   uint8           `json:"discriminant"`
	Parameter      string          `json:"parameter"`
	AllowsDeposits bool            `json:"allows_deposits"`
	Allowed        bool            `json:"allowed"`
}

// CurvesResponse lists the supported curve types
type CurvesResponse struct {
	Curves []CurveInfo `json:"curves"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	ABCICode  uint32 `json:"abci_code,omitempty"`
	Recovery  string `json:"recovery,omitempty"`
}

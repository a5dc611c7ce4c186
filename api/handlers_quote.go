package api

import (
	"net/http"
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// handleGetCurves lists the supported curve types
func (s *Server) handleGetCurves(c *gin.Context) {
	constraints := s.keeper.Constraints()

	resp := CurvesResponse{Curves: make([]CurveInfo, 0, len(types.AllCurveTypes()))}
	for _, curveType := range types.AllCurveTypes() {
		resp.Curves = append(resp.Curves, CurveInfo{
			Name:           curveType.String(),
			CurveType:      curveType,
			Discriminant:   uint8(curveType),
			Parameter:      curveType.ParameterName(),
			AllowsDeposits: curve.SupportsDeposits(curveType),
			Allowed:        constraints.ValidateCurve(curveType) == nil,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// handleQuoteSwap plans a swap against the pool in the request
func (s *Server) handleQuoteSwap(c *gin.Context) {
	var req QuoteSwapRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.Swap(c.Request.Context(), req.Pool, req.SwapRequest)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleQuoteDeposit plans a two-sided deposit
func (s *Server) handleQuoteDeposit(c *gin.Context) {
	var req QuoteDepositRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.DepositAllTokenTypes(c.Request.Context(), req.Pool, req.DepositAllRequest)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleQuoteWithdraw plans a two-sided withdrawal
func (s *Server) handleQuoteWithdraw(c *gin.Context) {
	var req QuoteWithdrawRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.WithdrawAllTokenTypes(c.Request.Context(), req.Pool, req.WithdrawAllRequest)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleQuoteDepositSingle plans a single-token deposit
func (s *Server) handleQuoteDepositSingle(c *gin.Context) {
	var req QuoteDepositSingleRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.DepositSingleTokenTypeExactAmountIn(c.Request.Context(), req.Pool, req.DepositSingleRequest)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleQuoteWithdrawSingle plans an exact-out single-token withdrawal
func (s *Server) handleQuoteWithdrawSingle(c *gin.Context) {
	var req QuoteWithdrawSingleRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.WithdrawSingleTokenTypeExactAmountOut(c.Request.Context(), req.Pool, req.WithdrawSingleRequest)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleNormalizedValue values the pool's reserves
func (s *Server) handleNormalizedValue(c *gin.Context) {
	var req NormalizedValueRequest
	if !bindRequest(c, &req) {
		return
	}

	value, err := s.keeper.NormalizedValue(c.Request.Context(), req.Pool)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, NormalizedValueResponse{
		CurveType:       req.Pool.Curve.CurveType,
		NormalizedValue: value.String(),
	})
}

// handleInitializePool plans the initial mint of a new pool
func (s *Server) handleInitializePool(c *gin.Context) {
	var req types.InitializeRequest
	if !bindRequest(c, &req) {
		return
	}

	plan, err := s.keeper.Initialize(c.Request.Context(), req)
	if err != nil {
		respondKeeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleCheckPool runs the pool checks
func (s *Server) handleCheckPool(c *gin.Context) {
	var req NormalizedValueRequest
	if !bindRequest(c, &req) {
		return
	}

	msg, broken := s.keeper.CheckPool(c.Request.Context(), req.Pool)
	status := http.StatusOK
	if broken {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, CheckPoolResponse{Broken: broken, Message: msg})
}

// bindRequest decodes the JSON body and writes a 400 response on failure
func bindRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// statusForError maps a keeper error to an HTTP status
func statusForError(err error) int {
	switch types.KindOf(err) {
	case types.ConfigurationError:
		return http.StatusBadRequest
	case types.DegenerateOperationError, types.SlippageError, types.ArithmeticError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondKeeperError writes a keeper error with its registered code and
// recovery suggestion
func respondKeeperError(c *gin.Context, err error) {
	codespace, code, _ := sdkerrors.ABCIInfo(err, false)
	c.JSON(statusForError(err), ErrorResponse{
		Error:     err.Error(),
		Code:      strings.ToUpper(types.KindOf(err).String()),
		Codespace: codespace,
		ABCICode:  code,
		Recovery:  types.GetRecoverySuggestion(err),
	})
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	api := s.router.Group("/api/v1")
	{
		api.GET("/curves", s.handleGetCurves)

		// Quote routes
		quote := api.Group("/quote")
		{
			quote.POST("/swap", s.handleQuoteSwap)
			quote.POST("/deposit", s.handleQuoteDeposit)
			quote.POST("/withdraw", s.handleQuoteWithdraw)
			quote.POST("/deposit-single", s.handleQuoteDepositSingle)
			quote.POST("/withdraw-single", s.handleQuoteWithdrawSingle)
			quote.POST("/normalized-value", s.handleNormalizedValue)
		}

		// Pool routes
		pools := api.Group("/pools")
		{
			pools.POST("/initialize", s.handleInitializePool)
			pools.POST("/check", s.handleCheckPool)
		}
	}
}

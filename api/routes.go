package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/health/live", s.liveness)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/rate-limit/stats", s.handleRateLimitStats)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/config", s.handleGetConfig)
		v1.GET("/native-decimals", s.handleGetNativeDecimals)

		pairs := v1.Group("/pairs")
		{
			pairs.GET("", s.handleGetPairs)
			pairs.GET("/:address", s.handleGetPair)
			pairs.GET("/:address/pool", s.handleGetPool)
			pairs.GET("/:address/simulate", s.handleSimulate)
			pairs.GET("/:address/reverse-simulate", s.handleReverseSimulate)
		}

		route := v1.Group("/route")
		{
			route.POST("/simulate", s.handleRouteSimulate)
		}
	}
}

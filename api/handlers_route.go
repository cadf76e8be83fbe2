package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	routertypes "github.com/choice-exchange/choice/x/router/types"
)

// maxRouteHops bounds the work one quote can ask for.
const maxRouteHops = 8

// handleRouteSimulate quotes a multi-hop route through the router
func (s *Server) handleRouteSimulate(c *gin.Context) {
	var req RouteSimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if len(req.Operations) > maxRouteHops {
		writeError(c, fmt.Errorf("%w: at most %d operations", ErrInvalidRequest, maxRouteHops))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	ops := make([]routertypes.SwapOperation, 0, len(req.Operations))
	for _, op := range req.Operations {
		offer, err := ParseAssetInfo(op.Offer)
		if err != nil {
			writeError(c, err)
			return
		}
		ask, err := ParseAssetInfo(op.Ask)
		if err != nil {
			writeError(c, err)
			return
		}
		ops = append(ops, routertypes.NewSwapOperation(offer, ask))
	}

	query := routertypes.NewSimulateSwapOperationsQuery(amount, ops...)
	if req.Reverse {
		query = routertypes.NewReverseSimulateSwapOperationsQuery(amount, ops...)
	}

	var res routertypes.SimulateSwapOperationsResponse
	if err := s.query(c.Request.Context(), s.backend.RouterAddress(), query, &res); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RouteSimulateResponse{
		Amount:  res.Amount,
		Reverse: req.Reverse,
		Hops:    len(ops),
	})
}

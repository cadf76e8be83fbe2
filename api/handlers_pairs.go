package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	routertypes "github.com/choice-exchange/choice/x/router/types"
)

// ConfigResponse describes the deployed protocol
type ConfigResponse struct {
	Factory       string                      `json:"factory"`
	Router        string                      `json:"router"`
	Height        int64                       `json:"height"`
	FactoryConfig factorytypes.ConfigResponse `json:"factory_config"`
	RouterConfig  routertypes.ConfigResponse  `json:"router_config"`
}

// handleGetConfig returns the factory and router settings
func (s *Server) handleGetConfig(c *gin.Context) {
	ctx := c.Request.Context()
	res := ConfigResponse{
		Factory: s.backend.FactoryAddress(),
		Router:  s.backend.RouterAddress(),
		Height:  s.backend.Height(),
	}
	if err := s.query(ctx, res.Factory, factorytypes.NewConfigQuery(), &res.FactoryConfig); err != nil {
		writeError(c, err)
		return
	}
	if err := s.query(ctx, res.Router, routertypes.NewConfigQuery(), &res.RouterConfig); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleGetPairs pages through the factory registry
func (s *Server) handleGetPairs(c *gin.Context) {
	startAfter, limit, err := parsePairsPage(c.Query("start_after"), c.Query("limit"))
	if err != nil {
		writeError(c, err)
		return
	}

	var res factorytypes.PairsResponse
	if err := s.query(c.Request.Context(), s.backend.FactoryAddress(), factorytypes.NewPairsQuery(startAfter, limit), &res); err != nil {
		writeError(c, err)
		return
	}
	if res.Pairs == nil {
		res.Pairs = []choicetypes.PairInfo{}
	}

	c.JSON(http.StatusOK, gin.H{
		"pairs": res.Pairs,
		"count": len(res.Pairs),
	})
}

// handleGetNativeDecimals returns the registered decimals of ?denom=
func (s *Server) handleGetNativeDecimals(c *gin.Context) {
	denom := c.Query("denom")
	if denom == "" {
		writeError(c, ErrInvalidRequest)
		return
	}

	var res factorytypes.NativeTokenDecimalsResponse
	if err := s.query(c.Request.Context(), s.backend.FactoryAddress(), factorytypes.NewNativeTokenDecimalsQuery(denom), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"denom": denom, "decimals": res.Decimals})
}

// handleGetPair returns a pair contract's own PairInfo
func (s *Server) handleGetPair(c *gin.Context) {
	addr, err := parseAddress(c.Param("address"))
	if err != nil {
		writeError(c, err)
		return
	}

	var res choicetypes.PairInfo
	if err := s.query(c.Request.Context(), addr, pairtypes.NewPairQuery(), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleGetPool returns live reserves and total share
func (s *Server) handleGetPool(c *gin.Context) {
	addr, err := parseAddress(c.Param("address"))
	if err != nil {
		writeError(c, err)
		return
	}

	var res pairtypes.PoolResponse
	if err := s.query(c.Request.Context(), addr, pairtypes.NewPoolQuery(), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleSimulate quotes ?amount= of ?offer= against a pair
func (s *Server) handleSimulate(c *gin.Context) {
	addr, asset, err := pairQuoteParams(c, "offer")
	if err != nil {
		writeError(c, err)
		return
	}

	var res pairtypes.SimulationResponse
	if err := s.query(c.Request.Context(), addr, pairtypes.NewSimulationQuery(asset), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleReverseSimulate quotes the offer needed to receive ?amount= of ?ask=
func (s *Server) handleReverseSimulate(c *gin.Context) {
	addr, asset, err := pairQuoteParams(c, "ask")
	if err != nil {
		writeError(c, err)
		return
	}

	var res pairtypes.ReverseSimulationResponse
	if err := s.query(c.Request.Context(), addr, pairtypes.NewReverseSimulationQuery(asset), &res); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pairQuoteParams(c *gin.Context, side string) (string, choicetypes.Asset, error) {
	addr, err := parseAddress(c.Param("address"))
	if err != nil {
		return "", choicetypes.Asset{}, err
	}
	info, err := ParseAssetInfo(c.Query(side))
	if err != nil {
		return "", choicetypes.Asset{}, err
	}
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		return "", choicetypes.Asset{}, err
	}
	return addr, choicetypes.NewAsset(info, amount), nil
}

package api

import (
	"context"
	"encoding/json"

	"cosmossdk.io/math"
)

// Backend is the contract host the gateway reads from.
type Backend interface {
	// QuerySmart runs a smart query against a contract address.
	QuerySmart(ctx context.Context, contract string, req json.RawMessage) (json.RawMessage, error)
	FactoryAddress() string
	RouterAddress() string
	Height() int64
}

// ==================== Request Types ====================

// RouteOperation is one hop of a route, each side an asset string: a
// contract address for a token, anything else a native denom.
type RouteOperation struct {
	Offer string `json:"offer" binding:"required"`
	Ask   string `json:"ask" binding:"required"`
}

// RouteSimulateRequest quotes a multi-hop route. With Reverse set, Amount is
// the wanted ask amount and the answer is the required offer.
type RouteSimulateRequest struct {
	Operations []RouteOperation `json:"operations" binding:"required,min=1"`
	Amount     string           `json:"amount" binding:"required"`
	Reverse    bool             `json:"reverse"`
}

// ==================== Response Types ====================

// RouteSimulateResponse answers a route simulation
type RouteSimulateResponse struct {
	Amount  math.Int `json:"amount"`
	Reverse bool     `json:"reverse"`
	Hops    int      `json:"hops"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

package types

import (
	"cosmossdk.io/errors"
)

// Pair contract sentinel errors
var (
	ErrUnauthorized           = errors.Register(ModuleName, 2, "Unauthorized")
	ErrInvalidZeroAmount      = errors.Register(ModuleName, 3, "Invalid zero amount")
	ErrMaxSpreadAssertion     = errors.Register(ModuleName, 4, "Max spread assertion")
	ErrAssetMismatch          = errors.Register(ModuleName, 5, "Asset mismatch")
	ErrMinAmountAssertion     = errors.Register(ModuleName, 6, "Min amount assertion")
	ErrExpiredDeadline        = errors.Register(ModuleName, 7, "Expired deadline")
	ErrMaxSlippageAssertion   = errors.Register(ModuleName, 8, "Max slippage assertion")
	ErrInvalidLiquidityFunds  = errors.Register(ModuleName, 9, "Invalid LP token funds provided; expected a matching LP token with the exact withdrawal amount")
	ErrMinimumLiquidityAmount = errors.Register(ModuleName, 10, "More initial liquidity needed")
	ErrLpSupplyOverflow       = errors.Register(ModuleName, 11, "LP supply overflow")
	ErrInsufficientLiquidity  = errors.Register(ModuleName, 12, "insufficient liquidity in pool")
)

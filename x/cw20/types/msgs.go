package types

import (
	"cosmossdk.io/math"
)

// InstantiateMsg creates a token with an optional minter.
type InstantiateMsg struct {
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	Decimals        uint8         `json:"decimals"`
	InitialBalances []Balance     `json:"initial_balances"`
	Mint            *MinterConfig `json:"mint,omitempty"`
}

type Balance struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// MinterConfig names the only account allowed to mint, and an optional cap
// on total supply.
type MinterConfig struct {
	Minter string    `json:"minter"`
	Cap    *math.Int `json:"cap,omitempty"`
}

// ExecuteMsg is the token's execute message. Exactly one field is set.
type ExecuteMsg struct {
	Transfer          *Transfer          `json:"transfer,omitempty"`
	Burn              *Burn              `json:"burn,omitempty"`
	Send              *Send              `json:"send,omitempty"`
	IncreaseAllowance *IncreaseAllowance `json:"increase_allowance,omitempty"`
	DecreaseAllowance *DecreaseAllowance `json:"decrease_allowance,omitempty"`
	TransferFrom      *TransferFrom      `json:"transfer_from,omitempty"`
	SendFrom          *SendFrom          `json:"send_from,omitempty"`
	BurnFrom          *BurnFrom          `json:"burn_from,omitempty"`
	Mint              *Mint              `json:"mint,omitempty"`
}

type Transfer struct {
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

type Burn struct {
	Amount math.Int `json:"amount"`
}

// Send transfers to a contract and calls its Receive hook with Msg.
type Send struct {
	Contract string   `json:"contract"`
	Amount   math.Int `json:"amount"`
	Msg      []byte   `json:"msg"`
}

type IncreaseAllowance struct {
	Spender string      `json:"spender"`
	Amount  math.Int    `json:"amount"`
	Expires *Expiration `json:"expires,omitempty"`
}

type DecreaseAllowance struct {
	Spender string      `json:"spender"`
	Amount  math.Int    `json:"amount"`
	Expires *Expiration `json:"expires,omitempty"`
}

type TransferFrom struct {
	Owner     string   `json:"owner"`
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

type SendFrom struct {
	Owner    string   `json:"owner"`
	Contract string   `json:"contract"`
	Amount   math.Int `json:"amount"`
	Msg      []byte   `json:"msg"`
}

type BurnFrom struct {
	Owner  string   `json:"owner"`
	Amount math.Int `json:"amount"`
}

type Mint struct {
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

// Expiration bounds an allowance by block height or block time (unix
// seconds). The zero value never expires.
type Expiration struct {
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *uint64   `json:"at_time,omitempty"`
	Never    *struct{} `json:"never,omitempty"`
}

// IsExpired reports whether the expiration has passed at the given block.
func (e *Expiration) IsExpired(height int64, seconds uint64) bool {
	switch {
	case e == nil:
		return false
	case e.AtHeight != nil:
		return height >= 0 && uint64(height) >= *e.AtHeight
	case e.AtTime != nil:
		return seconds >= *e.AtTime
	}
	return false
}

// ReceiveMsg is delivered to a contract by Send and SendFrom.
type ReceiveMsg struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
	Msg    []byte   `json:"msg"`
}

// ReceiverExecuteMsg wraps ReceiveMsg the way receiving contracts decode it.
type ReceiverExecuteMsg struct {
	Receive *ReceiveMsg `json:"receive,omitempty"`
}

// QueryMsg is the token's query message. Exactly one field is set.
type QueryMsg struct {
	Balance   *BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *struct{}       `json:"token_info,omitempty"`
	Allowance *AllowanceQuery `json:"allowance,omitempty"`
	Minter    *struct{}       `json:"minter,omitempty"`
}

type BalanceQuery struct {
	Address string `json:"address"`
}

type AllowanceQuery struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type BalanceResponse struct {
	Balance math.Int `json:"balance"`
}

type TokenInfoResponse struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply math.Int `json:"total_supply"`
}

type AllowanceResponse struct {
	Allowance math.Int    `json:"allowance"`
	Expires   *Expiration `json:"expires,omitempty"`
}

type MinterResponse struct {
	Minter string    `json:"minter"`
	Cap    *math.Int `json:"cap,omitempty"`
}

// NewBalanceQuery builds {"balance":{"address":...}}.
func NewBalanceQuery(address string) QueryMsg {
	return QueryMsg{Balance: &BalanceQuery{Address: address}}
}

// NewTokenInfoQuery builds {"token_info":{}}.
func NewTokenInfoQuery() QueryMsg {
	return QueryMsg{TokenInfo: &struct{}{}}
}

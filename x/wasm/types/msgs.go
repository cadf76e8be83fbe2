package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CosmosMsg is a message a contract asks the host to dispatch on its behalf.
// Exactly one field is set.
type CosmosMsg struct {
	Bank         *BankMsg         `json:"bank,omitempty"`
	Wasm         *WasmMsg         `json:"wasm,omitempty"`
	TokenFactory *TokenFactoryMsg `json:"token_factory,omitempty"`
	Exchange     *ExchangeMsg     `json:"exchange,omitempty"`
}

type BankMsg struct {
	Send *BankSend `json:"send,omitempty"`
	Burn *BankBurn `json:"burn,omitempty"`
}

type BankSend struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

type BankBurn struct {
	Amount sdk.Coins `json:"amount"`
}

type WasmMsg struct {
	Execute     *WasmExecute     `json:"execute,omitempty"`
	Instantiate *WasmInstantiate `json:"instantiate,omitempty"`
	Migrate     *WasmMigrate     `json:"migrate,omitempty"`
}

type WasmExecute struct {
	ContractAddr string          `json:"contract_addr"`
	Msg          json.RawMessage `json:"msg"`
	Funds        sdk.Coins       `json:"funds"`
}

type WasmInstantiate struct {
	Admin  string          `json:"admin,omitempty"`
	CodeID uint64          `json:"code_id"`
	Msg    json.RawMessage `json:"msg"`
	Funds  sdk.Coins       `json:"funds"`
	Label  string          `json:"label"`
}

type WasmMigrate struct {
	ContractAddr string          `json:"contract_addr"`
	NewCodeID    uint64          `json:"new_code_id"`
	Msg          json.RawMessage `json:"msg"`
}

// TokenFactoryMsg covers the denom factory operations available to contracts.
type TokenFactoryMsg struct {
	// Contracts can create denoms, namespaced under the contract's address.
	CreateDenom *CreateDenom `json:"create_denom,omitempty"`
	// Mints an existing factory denom the sender administers.
	MintTokens *MintTokens `json:"mint_tokens,omitempty"`
	// Burns from the sender's own balance of a factory denom it administers.
	BurnTokens  *BurnTokens  `json:"burn_tokens,omitempty"`
	SetMetadata *SetMetadata `json:"set_metadata,omitempty"`
}

// CreateDenom creates factory/{sender}/{subdenom}; the sender becomes its admin.
type CreateDenom struct {
	Subdenom string `json:"subdenom"`
}

type MintTokens struct {
	Denom         string   `json:"denom"`
	Amount        math.Int `json:"amount"`
	MintToAddress string   `json:"mint_to_address"`
}

type BurnTokens struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type SetMetadata struct {
	Denom    string   `json:"denom"`
	Metadata Metadata `json:"metadata"`
}

// ExchangeMsg moves funds between bank balances and exchange subaccounts.
type ExchangeMsg struct {
	Deposit          *ExchangeDeposit          `json:"deposit,omitempty"`
	ExternalTransfer *ExchangeExternalTransfer `json:"external_transfer,omitempty"`
}

type ExchangeDeposit struct {
	SubaccountID string   `json:"subaccount_id"`
	Amount       sdk.Coin `json:"amount"`
}

type ExchangeExternalTransfer struct {
	SourceSubaccountID      string   `json:"source_subaccount_id"`
	DestinationSubaccountID string   `json:"destination_subaccount_id"`
	Amount                  sdk.Coin `json:"amount"`
}

// NewBankSendMsg returns a bank transfer of amount to the recipient.
func NewBankSendMsg(to string, amount ...sdk.Coin) CosmosMsg {
	return CosmosMsg{Bank: &BankMsg{Send: &BankSend{ToAddress: to, Amount: sdk.NewCoins(amount...)}}}
}

// NewExecuteMsg JSON encodes msg and wraps it into a contract execution.
func NewExecuteMsg(contract string, msg any, funds sdk.Coins) (CosmosMsg, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, ErrInvalidMsg.Wrapf("encode execute msg: %s", err)
	}
	return CosmosMsg{Wasm: &WasmMsg{Execute: &WasmExecute{ContractAddr: contract, Msg: bz, Funds: funds}}}, nil
}

// NewInstantiateMsg JSON encodes msg and wraps it into a contract instantiation.
func NewInstantiateMsg(codeID uint64, admin, label string, msg any, funds sdk.Coins) (CosmosMsg, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, ErrInvalidMsg.Wrapf("encode instantiate msg: %s", err)
	}
	return CosmosMsg{Wasm: &WasmMsg{Instantiate: &WasmInstantiate{
		Admin:  admin,
		CodeID: codeID,
		Msg:    bz,
		Funds:  funds,
		Label:  label,
	}}}, nil
}

// NewMigrateMsg JSON encodes msg and wraps it into a contract migration.
func NewMigrateMsg(contract string, codeID uint64, msg any) (CosmosMsg, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, ErrInvalidMsg.Wrapf("encode migrate msg: %s", err)
	}
	return CosmosMsg{Wasm: &WasmMsg{Migrate: &WasmMigrate{ContractAddr: contract, NewCodeID: codeID, Msg: bz}}}, nil
}

func NewCreateDenomMsg(subdenom string) CosmosMsg {
	return CosmosMsg{TokenFactory: &TokenFactoryMsg{CreateDenom: &CreateDenom{Subdenom: subdenom}}}
}

func NewMintTokensMsg(denom string, amount math.Int, mintTo string) CosmosMsg {
	return CosmosMsg{TokenFactory: &TokenFactoryMsg{MintTokens: &MintTokens{
		Denom:         denom,
		Amount:        amount,
		MintToAddress: mintTo,
	}}}
}

func NewBurnTokensMsg(denom string, amount math.Int) CosmosMsg {
	return CosmosMsg{TokenFactory: &TokenFactoryMsg{BurnTokens: &BurnTokens{Denom: denom, Amount: amount}}}
}

func NewSetMetadataMsg(denom, name, symbol string, decimals uint8) CosmosMsg {
	return CosmosMsg{TokenFactory: &TokenFactoryMsg{SetMetadata: &SetMetadata{
		Denom:    denom,
		Metadata: Metadata{Name: name, Symbol: symbol, Decimals: decimals},
	}}}
}

func NewDepositMsg(subaccountID string, amount sdk.Coin) CosmosMsg {
	return CosmosMsg{Exchange: &ExchangeMsg{Deposit: &ExchangeDeposit{SubaccountID: subaccountID, Amount: amount}}}
}

func NewExternalTransferMsg(source, destination string, amount sdk.Coin) CosmosMsg {
	return CosmosMsg{Exchange: &ExchangeMsg{ExternalTransfer: &ExchangeExternalTransfer{
		SourceSubaccountID:      source,
		DestinationSubaccountID: destination,
		Amount:                  amount,
	}}}
}

package types

// AdapterInstantiateMsg takes no parameters.
type AdapterInstantiateMsg struct{}

// AdapterExecuteMsg converts contract tokens into factory denoms and back.
// Exactly one field is set.
type AdapterExecuteMsg struct {
	// Receive mints factory/<adapter>/<token> to the token sender.
	Receive *ReceiveMsg `json:"receive,omitempty"`
	// RegisterCw20Contract creates the factory denom of a token ahead of its first deposit.
	RegisterCw20Contract *RegisterCw20Contract `json:"register_cw20_contract,omitempty"`
	// RedeemAndTransfer burns the attached factory denom and releases the token.
	RedeemAndTransfer *RedeemAndTransfer `json:"redeem_and_transfer,omitempty"`
}

type RegisterCw20Contract struct {
	Addr string `json:"addr"`
}

type RedeemAndTransfer struct {
	Recipient *string `json:"recipient,omitempty"`
}

// AdapterQueryMsg is the adapter's query message. Exactly one field is set.
type AdapterQueryMsg struct {
	RegisteredContracts *struct{} `json:"registered_contracts,omitempty"`
	NewDenomFee         *struct{} `json:"new_denom_fee,omitempty"`
}

package types

import (
	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
)

// InstantiateMsg configures the forwarder.
type InstantiateMsg struct {
	Owner                 string `json:"owner"`
	AdapterContract       string `json:"adapter_contract"`
	BurnAuctionSubaccount string `json:"burn_auction_subaccount"`
}

// ExecuteMsg is the forwarder's execute message. Exactly one field is set.
// AcceptOwnership and CancelOwnershipProposal are also accepted as bare strings.
type ExecuteMsg struct {
	Receive                 *cw20types.ReceiveMsg           `json:"receive,omitempty"`
	SendNative              *SendNative                     `json:"send_native,omitempty"`
	UpdateConfig            *UpdateConfig                   `json:"update_config,omitempty"`
	ProposeNewOwner         *choicetypes.ProposeNewOwnerMsg `json:"propose_new_owner,omitempty"`
	AcceptOwnership         *struct{}                       `json:"accept_ownership,omitempty"`
	CancelOwnershipProposal *struct{}                       `json:"cancel_ownership_proposal,omitempty"`
}

// SendNative relays the attached native asset into the auction subaccount.
type SendNative struct {
	Asset choicetypes.Asset `json:"asset"`
}

type UpdateConfig struct {
	AdapterContract       *string `json:"adapter_contract,omitempty"`
	BurnAuctionSubaccount *string `json:"burn_auction_subaccount,omitempty"`
}

type QueryMsg struct {
	GetConfig *struct{} `json:"get_config,omitempty"`
}

// ConfigResponse is the answer to GetConfig.
type ConfigResponse struct {
	Owner                 string  `json:"owner"`
	AdapterContract       string  `json:"adapter_contract"`
	BurnAuctionSubaccount string  `json:"burn_auction_subaccount"`
	ProposedOwner         *string `json:"proposed_owner,omitempty"`
}

func NewGetConfigQuery() QueryMsg {
	return QueryMsg{GetConfig: &struct{}{}}
}

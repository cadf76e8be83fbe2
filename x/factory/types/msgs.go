package types

import (
	"cosmossdk.io/math"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
)

type InstantiateMsg struct {
	PairCodeID       uint64 `json:"pair_code_id"`
	BurnAddress      string `json:"burn_address"`
	FeeWalletAddress string `json:"fee_wallet_address"`
}

// ExecuteMsg is the factory's execute message. Exactly one field is set.
// AcceptOwnership and CancelOwnershipProposal are also accepted as bare strings.
type ExecuteMsg struct {
	UpdateConfig            *UpdateConfig                   `json:"update_config,omitempty"`
	CreatePair              *CreatePair                     `json:"create_pair,omitempty"`
	AddNativeTokenDecimals  *AddNativeTokenDecimals         `json:"add_native_token_decimals,omitempty"`
	MigratePair             *MigratePair                    `json:"migrate_pair,omitempty"`
	WithdrawNative          *WithdrawNative                 `json:"withdraw_native,omitempty"`
	ProposeNewOwner         *choicetypes.ProposeNewOwnerMsg `json:"propose_new_owner,omitempty"`
	AcceptOwnership         *struct{}                       `json:"accept_ownership,omitempty"`
	CancelOwnershipProposal *struct{}                       `json:"cancel_ownership_proposal,omitempty"`
}

type UpdateConfig struct {
	Params UpdateConfigParams `json:"params"`
}

// UpdateConfigParams changes only the fields that are set. Pairs already
// created keep the burn and fee wallet addresses they were created with.
type UpdateConfigParams struct {
	PairCodeID       *uint64 `json:"pair_code_id,omitempty"`
	BurnAddress      *string `json:"burn_address,omitempty"`
	FeeWalletAddress *string `json:"fee_wallet_address,omitempty"`
}

// CreatePair instantiates a pair for two assets. Non-zero amounts seed the
// new pool on behalf of the caller once the pair exists.
type CreatePair struct {
	Assets [2]choicetypes.Asset `json:"assets"`
}

// AddNativeTokenDecimals registers the decimals of a bank denom. The factory
// must hold some of the denom.
type AddNativeTokenDecimals struct {
	Denom    string `json:"denom"`
	Decimals uint8  `json:"decimals"`
}

type MigratePair struct {
	Contract string  `json:"contract"`
	CodeID   *uint64 `json:"code_id,omitempty"`
}

type WithdrawNative struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// QueryMsg is the factory's query message. Exactly one field is set.
type QueryMsg struct {
	Config              *struct{}                 `json:"config,omitempty"`
	Pair                *PairQuery                `json:"pair,omitempty"`
	Pairs               *PairsQuery               `json:"pairs,omitempty"`
	NativeTokenDecimals *NativeTokenDecimalsQuery `json:"native_token_decimals,omitempty"`
}

type PairQuery struct {
	AssetInfos [2]choicetypes.AssetInfo `json:"asset_infos"`
}

type PairsQuery struct {
	StartAfter *[2]choicetypes.AssetInfo `json:"start_after,omitempty"`
	Limit      *uint32                   `json:"limit,omitempty"`
}

type NativeTokenDecimalsQuery struct {
	Denom string `json:"denom"`
}

type ConfigResponse struct {
	Owner            string  `json:"owner"`
	PairCodeID       uint64  `json:"pair_code_id"`
	BurnAddress      string  `json:"burn_address"`
	FeeWalletAddress string  `json:"fee_wallet_address"`
	ProposedOwner    *string `json:"proposed_owner,omitempty"`
}

type PairsResponse struct {
	Pairs []choicetypes.PairInfo `json:"pairs"`
}

type NativeTokenDecimalsResponse struct {
	Decimals uint8 `json:"decimals"`
}

type MigrateMsg struct{}

// PendingPair is staged by CreatePair and consumed by the reply carrying the
// same id.
type PendingPair struct {
	PairKey       []byte                  `json:"pair_key"`
	Assets        [2]choicetypes.AssetRaw `json:"assets"`
	AssetDecimals [2]uint8                `json:"asset_decimals"`
	Sender        string                  `json:"sender"`
}

func NewConfigQuery() QueryMsg {
	return QueryMsg{Config: &struct{}{}}
}

func NewPairQuery(infos [2]choicetypes.AssetInfo) QueryMsg {
	return QueryMsg{Pair: &PairQuery{AssetInfos: infos}}
}

func NewPairsQuery(startAfter *[2]choicetypes.AssetInfo, limit *uint32) QueryMsg {
	return QueryMsg{Pairs: &PairsQuery{StartAfter: startAfter, Limit: limit}}
}

func NewNativeTokenDecimalsQuery(denom string) QueryMsg {
	return QueryMsg{NativeTokenDecimals: &NativeTokenDecimalsQuery{Denom: denom}}
}

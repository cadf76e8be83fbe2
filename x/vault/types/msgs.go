// Package types holds the message boundary of the vault auto-compounder. The
// vault itself is deployed separately; pairs and routers only need to speak
// its messages.
package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
)

type InstantiateMsg struct {
	Owner        string                   `json:"owner"`
	PairContract string                   `json:"pair_contract"`
	FarmContract string                   `json:"farm_contract"`
	LpToken      string                   `json:"lp_token"`
	RewardToken  choicetypes.AssetInfo    `json:"reward_token"`
	AssetInfos   [2]choicetypes.AssetInfo `json:"asset_infos"`
}

// Validate checks the addresses and asset infos.
func (m InstantiateMsg) Validate() error {
	for field, addr := range map[string]string{
		"owner":         m.Owner,
		"pair_contract": m.PairContract,
		"farm_contract": m.FarmContract,
		"lp_token":      m.LpToken,
	} {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return choicetypes.ErrInvalidAddress.Wrapf("%s: %s", field, err)
		}
	}
	if err := m.RewardToken.Validate(); err != nil {
		return err
	}
	for _, info := range m.AssetInfos {
		if err := info.Validate(); err != nil {
			return err
		}
	}
	if m.AssetInfos[0].Equal(m.AssetInfos[1]) {
		return choicetypes.ErrInvalidAsset.Wrap("identical asset infos")
	}
	return nil
}

// ExecuteMsg is the vault's execute message. Exactly one field is set.
type ExecuteMsg struct {
	Receive  *cw20types.ReceiveMsg `json:"receive,omitempty"`
	Withdraw *Withdraw             `json:"withdraw,omitempty"`
	Compound *struct{}             `json:"compound,omitempty"`
}

// Withdraw redeems shares for the underlying LP tokens.
type Withdraw struct {
	Shares math.Int `json:"shares"`
}

// HookMsg rides in the msg of a token Send to the vault.
type HookMsg struct {
	Deposit *struct{} `json:"deposit,omitempty"`
}

type QueryMsg struct {
	Config      *struct{} `json:"config,omitempty"`
	TotalShares *struct{} `json:"total_shares,omitempty"`
	UserInfo    *UserInfo `json:"user_info,omitempty"`
}

type UserInfo struct {
	User string `json:"user"`
}

// ConfigResponse answers Config with the stored configuration.
type ConfigResponse = InstantiateMsg

// TotalShares answers with a bare amount.
type TotalSharesResponse = math.Int

type UserInfoResponse struct {
	Shares math.Int `json:"shares"`
}

// NewDepositSend builds the token Send that deposits amount LP tokens into vault.
func NewDepositSend(vault string, amount math.Int) (cw20types.ExecuteMsg, error) {
	hook, err := json.Marshal(HookMsg{Deposit: &struct{}{}})
	if err != nil {
		return cw20types.ExecuteMsg{}, err
	}
	return cw20types.ExecuteMsg{Send: &cw20types.Send{Contract: vault, Amount: amount, Msg: hook}}, nil
}

func NewWithdrawMsg(shares math.Int) ExecuteMsg {
	return ExecuteMsg{Withdraw: &Withdraw{Shares: shares}}
}

func NewCompoundMsg() ExecuteMsg {
	return ExecuteMsg{Compound: &struct{}{}}
}

func NewConfigQuery() QueryMsg {
	return QueryMsg{Config: &struct{}{}}
}

func NewTotalSharesQuery() QueryMsg {
	return QueryMsg{TotalShares: &struct{}{}}
}

func NewUserInfoQuery(user string) QueryMsg {
	return QueryMsg{UserInfo: &UserInfo{User: user}}
}

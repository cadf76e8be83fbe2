package types

import (
	"bytes"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// AssetInfo identifies a tradable asset: either a bank denom or a token
// contract. Exactly one field is set.
type AssetInfo struct {
	Token       *TokenInfo       `json:"token,omitempty"`
	NativeToken *NativeTokenInfo `json:"native_token,omitempty"`
}

type TokenInfo struct {
	ContractAddr string `json:"contract_addr"`
}

type NativeTokenInfo struct {
	Denom string `json:"denom"`
}

// NativeAssetInfo returns the info of a bank denom.
func NativeAssetInfo(denom string) AssetInfo {
	return AssetInfo{NativeToken: &NativeTokenInfo{Denom: denom}}
}

// TokenAssetInfo returns the info of a token contract.
func TokenAssetInfo(contractAddr string) AssetInfo {
	return AssetInfo{Token: &TokenInfo{ContractAddr: contractAddr}}
}

func (a AssetInfo) IsNative() bool {
	return a.NativeToken != nil
}

// String is the denom or the contract address.
func (a AssetInfo) String() string {
	switch {
	case a.NativeToken != nil:
		return a.NativeToken.Denom
	case a.Token != nil:
		return a.Token.ContractAddr
	}
	return ""
}

// Equal compares variant and payload.
func (a AssetInfo) Equal(other AssetInfo) bool {
	switch {
	case a.NativeToken != nil && other.NativeToken != nil:
		return a.NativeToken.Denom == other.NativeToken.Denom
	case a.Token != nil && other.Token != nil:
		return a.Token.ContractAddr == other.Token.ContractAddr
	}
	return false
}

func (a AssetInfo) Validate() error {
	switch {
	case a.NativeToken != nil && a.Token != nil:
		return ErrInvalidAsset.Wrap("asset info sets both native_token and token")
	case a.NativeToken != nil:
		if err := sdk.ValidateDenom(a.NativeToken.Denom); err != nil {
			return ErrInvalidAsset.Wrapf("denom %q: %s", a.NativeToken.Denom, err)
		}
	case a.Token != nil:
		if _, err := sdk.AccAddressFromBech32(a.Token.ContractAddr); err != nil {
			return ErrInvalidAsset.Wrapf("token contract %q: %s", a.Token.ContractAddr, err)
		}
	default:
		return ErrInvalidAsset.Wrap("empty asset info")
	}
	return nil
}

// ToRaw converts the token contract address into its canonical bytes.
func (a AssetInfo) ToRaw() (AssetInfoRaw, error) {
	if err := a.Validate(); err != nil {
		return AssetInfoRaw{}, err
	}
	if a.NativeToken != nil {
		return AssetInfoRaw{NativeToken: &NativeTokenInfo{Denom: a.NativeToken.Denom}}, nil
	}
	addr, _ := sdk.AccAddressFromBech32(a.Token.ContractAddr)
	return AssetInfoRaw{Token: &TokenInfoRaw{ContractAddr: addr}}, nil
}

// QueryPool returns the balance of account in this asset.
func (a AssetInfo) QueryPool(q wasmtypes.Querier, account string) (math.Int, error) {
	if a.NativeToken != nil {
		return QueryBalance(q, account, a.NativeToken.Denom)
	}
	if a.Token != nil {
		return QueryTokenBalance(q, a.Token.ContractAddr, account)
	}
	return math.Int{}, ErrInvalidAsset.Wrap("empty asset info")
}

// AssetInfoRaw is the stored form of AssetInfo.
type AssetInfoRaw struct {
	Token       *TokenInfoRaw    `json:"token,omitempty"`
	NativeToken *NativeTokenInfo `json:"native_token,omitempty"`
}

type TokenInfoRaw struct {
	ContractAddr sdk.AccAddress `json:"contract_addr"`
}

const (
	assetKindNative byte = 0x01
	assetKindToken  byte = 0x02
)

// Bytes is the key material of the asset: a kind byte followed by the
// length prefixed denom or address.
func (a AssetInfoRaw) Bytes() []byte {
	if a.NativeToken != nil {
		return append([]byte{assetKindNative}, address.MustLengthPrefix([]byte(a.NativeToken.Denom))...)
	}
	if a.Token != nil {
		return append([]byte{assetKindToken}, address.MustLengthPrefix(a.Token.ContractAddr)...)
	}
	return nil
}

func (a AssetInfoRaw) ToNormal() AssetInfo {
	if a.NativeToken != nil {
		return NativeAssetInfo(a.NativeToken.Denom)
	}
	if a.Token != nil {
		return TokenAssetInfo(a.Token.ContractAddr.String())
	}
	return AssetInfo{}
}

func (a AssetInfoRaw) Equal(other AssetInfoRaw) bool {
	switch {
	case a.NativeToken != nil && other.NativeToken != nil:
		return a.NativeToken.Denom == other.NativeToken.Denom
	case a.Token != nil && other.Token != nil:
		return a.Token.ContractAddr.Equals(other.Token.ContractAddr)
	}
	return false
}

// Asset is an amount of an asset.
type Asset struct {
	Info   AssetInfo `json:"info"`
	Amount math.Int  `json:"amount"`
}

// NewAsset is shorthand for an Asset literal.
func NewAsset(info AssetInfo, amount math.Int) Asset {
	return Asset{Info: info, Amount: amount}
}

// String renders "<amount><info>", e.g. "100inj".
func (a Asset) String() string {
	amount := a.Amount
	if amount.IsNil() {
		amount = math.ZeroInt()
	}
	return fmt.Sprintf("%s%s", amount, a.Info)
}

func (a Asset) IsNative() bool {
	return a.Info.IsNative()
}

// Validate checks the info and that the amount is a uint128.
func (a Asset) Validate() error {
	if err := a.Info.Validate(); err != nil {
		return err
	}
	if a.Amount.IsNil() || !FitsUint128(a.Amount) {
		return ErrInvalidAsset.Wrapf("amount of %s must be a uint128", a.Info)
	}
	return nil
}

// IntoMsg builds the message transferring the asset from the calling
// contract to recipient.
func (a Asset) IntoMsg(recipient string) (wasmtypes.CosmosMsg, error) {
	if a.Info.NativeToken != nil {
		return wasmtypes.NewBankSendMsg(recipient, sdk.NewCoin(a.Info.NativeToken.Denom, a.Amount)), nil
	}
	if a.Info.Token != nil {
		return wasmtypes.NewExecuteMsg(a.Info.Token.ContractAddr, cw20types.ExecuteMsg{
			Transfer: &cw20types.Transfer{Recipient: recipient, Amount: a.Amount},
		}, nil)
	}
	return wasmtypes.CosmosMsg{}, ErrInvalidAsset.Wrap("empty asset info")
}

// AssertSentNativeTokenBalance checks the call carried exactly Amount of a
// native asset. Token assets are not checked.
func (a Asset) AssertSentNativeTokenBalance(funds sdk.Coins) error {
	if a.Info.NativeToken == nil {
		return nil
	}
	sent := funds.AmountOf(a.Info.NativeToken.Denom)
	if !sent.Equal(a.Amount) {
		return ErrNativeFundsMismatch.Wrapf("expected %s, sent %s%s", a, sent, a.Info.NativeToken.Denom)
	}
	return nil
}

func (a Asset) ToRaw() (AssetRaw, error) {
	info, err := a.Info.ToRaw()
	if err != nil {
		return AssetRaw{}, err
	}
	return AssetRaw{Info: info, Amount: a.Amount}, nil
}

// AssetRaw is the stored form of Asset.
type AssetRaw struct {
	Info   AssetInfoRaw `json:"info"`
	Amount math.Int     `json:"amount"`
}

func (a AssetRaw) ToNormal() Asset {
	return Asset{Info: a.Info.ToNormal(), Amount: a.Amount}
}

// PairInfo describes a pair contract.
type PairInfo struct {
	AssetInfos       [2]AssetInfo `json:"asset_infos"`
	ContractAddr     string       `json:"contract_addr"`
	LiquidityToken   string       `json:"liquidity_token"`
	AssetDecimals    [2]uint8     `json:"asset_decimals"`
	BurnAddress      string       `json:"burn_address"`
	FeeWalletAddress string       `json:"fee_wallet_address"`
}

// QueryPools returns the live reserves held by the pair contract.
func (p PairInfo) QueryPools(q wasmtypes.Querier) ([2]Asset, error) {
	var pools [2]Asset
	for i, info := range p.AssetInfos {
		amount, err := info.QueryPool(q, p.ContractAddr)
		if err != nil {
			return pools, err
		}
		pools[i] = Asset{Info: info, Amount: amount}
	}
	return pools, nil
}

// PairInfoRaw is the stored form of PairInfo.
type PairInfoRaw struct {
	AssetInfos       [2]AssetInfoRaw `json:"asset_infos"`
	ContractAddr     sdk.AccAddress  `json:"contract_addr"`
	LiquidityToken   string          `json:"liquidity_token"`
	AssetDecimals    [2]uint8        `json:"asset_decimals"`
	BurnAddress      sdk.AccAddress  `json:"burn_address"`
	FeeWalletAddress sdk.AccAddress  `json:"fee_wallet_address"`
}

func (p PairInfoRaw) ToNormal() PairInfo {
	return PairInfo{
		AssetInfos:       [2]AssetInfo{p.AssetInfos[0].ToNormal(), p.AssetInfos[1].ToNormal()},
		ContractAddr:     p.ContractAddr.String(),
		LiquidityToken:   p.LiquidityToken,
		AssetDecimals:    p.AssetDecimals,
		BurnAddress:      p.BurnAddress.String(),
		FeeWalletAddress: p.FeeWalletAddress.String(),
	}
}

// PairKey is the canonical, order independent key of two assets. Each
// component is self delimiting, so no two pairs share a key.
func PairKey(infos [2]AssetInfoRaw) []byte {
	a, b := infos[0].Bytes(), infos[1].Bytes()
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	key := make([]byte, 0, len(a)+len(b))
	key = append(key, a...)
	return append(key, b...)
}

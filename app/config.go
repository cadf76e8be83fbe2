package app

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/choice-exchange/choice/api"
	"github.com/choice-exchange/choice/app/telemetry"
)

// Config is the devnet configuration read from devnet.yaml.
type Config struct {
	API       *api.Config      `mapstructure:"api" yaml:"api"`
	Telemetry telemetry.Config `mapstructure:"telemetry" yaml:"telemetry"`
	Genesis   GenesisConfig    `mapstructure:"genesis" yaml:"genesis"`
}

// GenesisConfig describes the state the devnet starts from. Asset strings
// name a genesis token by symbol, a token contract by address, or else a
// native denom.
type GenesisConfig struct {
	ChainID string `mapstructure:"chain_id" yaml:"chain_id"`
	// GenesisTime defaults to the wall clock at start.
	GenesisTime time.Time `mapstructure:"genesis_time" yaml:"genesis_time,omitempty"`
	// Owner owns the factory and the forwarder, and instantiates everything.
	Owner     string `mapstructure:"owner" yaml:"owner"`
	FeeWallet string `mapstructure:"fee_wallet" yaml:"fee_wallet"`
	// BurnSubaccount defaults to the owner's subaccount with nonce 1.
	BurnSubaccount   string `mapstructure:"burn_subaccount" yaml:"burn_subaccount"`
	DenomCreationFee string `mapstructure:"denom_creation_fee" yaml:"denom_creation_fee"`

	Accounts       []GenesisAccount       `mapstructure:"accounts" yaml:"accounts"`
	Tokens         []GenesisToken         `mapstructure:"tokens" yaml:"tokens"`
	NativeDecimals []GenesisNativeDecimal `mapstructure:"native_decimals" yaml:"native_decimals"`
	Pairs          []GenesisPair          `mapstructure:"pairs" yaml:"pairs"`
}

// GenesisAccount is funded with Coins, e.g. "1000inj,500usdt".
type GenesisAccount struct {
	Address string `mapstructure:"address" yaml:"address"`
	Coins   string `mapstructure:"coins" yaml:"coins"`
}

type GenesisToken struct {
	Symbol   string           `mapstructure:"symbol" yaml:"symbol"`
	Name     string           `mapstructure:"name" yaml:"name"`
	Decimals uint8            `mapstructure:"decimals" yaml:"decimals"`
	Balances []GenesisBalance `mapstructure:"balances" yaml:"balances"`
}

type GenesisBalance struct {
	Address string `mapstructure:"address" yaml:"address"`
	Amount  string `mapstructure:"amount" yaml:"amount"`
}

type GenesisNativeDecimal struct {
	Denom    string `mapstructure:"denom" yaml:"denom"`
	Decimals uint8  `mapstructure:"decimals" yaml:"decimals"`
}

// GenesisPair is created through the factory by Creator and seeded with
// the asset amounts, if positive.
type GenesisPair struct {
	Creator string         `mapstructure:"creator" yaml:"creator"`
	Assets  []GenesisAsset `mapstructure:"assets" yaml:"assets"`
}

type GenesisAsset struct {
	Asset  string `mapstructure:"asset" yaml:"asset"`
	Amount string `mapstructure:"amount" yaml:"amount"`
}

// DevnetAddress derives a deterministic devnet account from name.
func DevnetAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Module("choice-devnet", []byte(name))[:20])
}

// DefaultConfig returns a devnet with one trader, one contract token and two
// seeded pairs.
func DefaultConfig() Config {
	owner := DevnetAddress("owner").String()
	trader := DevnetAddress("trader").String()

	tel := telemetry.DefaultConfig()
	tel.ChainID = DefaultChainID

	return Config{
		API:       api.DefaultConfig(),
		Telemetry: tel,
		Genesis: GenesisConfig{
			ChainID:          DefaultChainID,
			Owner:            owner,
			FeeWallet:        DevnetAddress("fee-wallet").String(),
			DenomCreationFee: "1000000000000000000" + NativeDenom,
			Accounts: []GenesisAccount{
				{Address: owner, Coins: "1000000000000000000000000inj,10000000000000usdt"},
				{Address: trader, Coins: "1000000000000000000000inj,1000000000usdt"},
			},
			Tokens: []GenesisToken{
				{
					Symbol:   "CHOICE",
					Name:     "Choice Token",
					Decimals: 6,
					Balances: []GenesisBalance{
						{Address: owner, Amount: "1000000000000000"},
						{Address: trader, Amount: "1000000000"},
					},
				},
			},
			NativeDecimals: []GenesisNativeDecimal{
				{Denom: NativeDenom, Decimals: 18},
				{Denom: "usdt", Decimals: 6},
			},
			Pairs: []GenesisPair{
				{Creator: owner, Assets: []GenesisAsset{
					{Asset: NativeDenom, Amount: "1000000000000000000000"},
					{Asset: "usdt", Amount: "25000000000"},
				}},
				{Creator: owner, Assets: []GenesisAsset{
					{Asset: "CHOICE", Amount: "100000000000"},
					{Asset: NativeDenom, Amount: "100000000000000000000"},
				}},
			},
		},
	}
}

// Validate checks everything that can be checked before deployment
func (c Config) Validate() error {
	if c.API == nil {
		return fmt.Errorf("api config is required")
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Genesis.Validate()
}

// Validate checks the genesis addresses, coins and amounts
func (g GenesisConfig) Validate() error {
	if g.ChainID == "" {
		return fmt.Errorf("genesis.chain_id is required")
	}
	if _, err := sdk.AccAddressFromBech32(g.Owner); err != nil {
		return fmt.Errorf("genesis.owner: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(g.FeeWallet); err != nil {
		return fmt.Errorf("genesis.fee_wallet: %w", err)
	}
	if _, err := sdk.ParseCoinsNormalized(g.DenomCreationFee); err != nil {
		return fmt.Errorf("genesis.denom_creation_fee: %w", err)
	}

	for i, acc := range g.Accounts {
		if _, err := sdk.AccAddressFromBech32(acc.Address); err != nil {
			return fmt.Errorf("genesis.accounts[%d]: %w", i, err)
		}
		if _, err := sdk.ParseCoinsNormalized(acc.Coins); err != nil {
			return fmt.Errorf("genesis.accounts[%d]: %w", i, err)
		}
	}

	symbols := make(map[string]bool, len(g.Tokens))
	for i, token := range g.Tokens {
		if token.Symbol == "" || symbols[token.Symbol] {
			return fmt.Errorf("genesis.tokens[%d]: empty or duplicate symbol %q", i, token.Symbol)
		}
		symbols[token.Symbol] = true
		for j, bal := range token.Balances {
			if _, err := sdk.AccAddressFromBech32(bal.Address); err != nil {
				return fmt.Errorf("genesis.tokens[%d].balances[%d]: %w", i, j, err)
			}
			if _, err := parseGenesisAmount(bal.Amount); err != nil {
				return fmt.Errorf("genesis.tokens[%d].balances[%d]: %w", i, j, err)
			}
		}
	}

	for i, pair := range g.Pairs {
		if len(pair.Assets) != 2 {
			return fmt.Errorf("genesis.pairs[%d]: a pair takes exactly two assets", i)
		}
		if pair.Creator != "" {
			if _, err := sdk.AccAddressFromBech32(pair.Creator); err != nil {
				return fmt.Errorf("genesis.pairs[%d].creator: %w", i, err)
			}
		}
		for j, asset := range pair.Assets {
			if asset.Asset == "" {
				return fmt.Errorf("genesis.pairs[%d].assets[%d]: empty asset", i, j)
			}
			if _, err := parseGenesisAmount(asset.Amount); err != nil {
				return fmt.Errorf("genesis.pairs[%d].assets[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

// parseGenesisAmount reads a non-negative integer; empty means zero.
func parseGenesisAmount(s string) (math.Int, error) {
	if s == "" {
		return math.ZeroInt(), nil
	}
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

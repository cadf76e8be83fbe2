package app

import (
	"os"
	"path/filepath"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Bech32PrefixAccAddr defines the Bech32 prefix of an account's address
	Bech32PrefixAccAddr = "inj"
	// Bech32PrefixAccPub defines the Bech32 prefix of an account's public key
	Bech32PrefixAccPub = "injpub"

	// CoinType is the SLIP44 coin type of the hosting chain
	CoinType = 60

	// NativeDenom is the fee and base denom of the devnet.
	NativeDenom = "inj"

	// DefaultChainID names the devnet chain.
	DefaultChainID = "choice-devnet-1"
)

// DefaultNodeHome is the default home directory of choiced.
var DefaultNodeHome string

var sdkConfigOnce sync.Once

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".choice")
}

// SetConfig sets the address prefixes of the hosting chain. It is safe to
// call more than once.
func SetConfig() {
	sdkConfigOnce.Do(func() {
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(Bech32PrefixAccAddr, Bech32PrefixAccPub)
		config.SetCoinType(CoinType)
		config.Seal()
	})
}

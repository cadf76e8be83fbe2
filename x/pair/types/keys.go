package types

const (
	// ModuleName is the codespace of the pair contract.
	ModuleName = "pair"

	// ContractName is recorded as the contract version name at instantiation.
	ContractName = "crates.io:choice-pair"
	// ContractVersion is the version new pairs are instantiated with.
	ContractVersion = "1.1.2"
	// MigrateTargetVersion is the version Migrate moves a pair to.
	MigrateTargetVersion = "1.1.2"

	// LPSubdenom names the liquidity token under the pair's own factory namespace.
	LPSubdenom = "lp"
	// LPName and LPSymbol are the metadata of every liquidity token.
	LPName     = "choice liquidity token"
	LPSymbol   = "uLP"
	LPDecimals = 6

	// PairInfoKey stores the pair's PairInfoRaw.
	PairInfoKey = "pair_info"

	// MaxDecimals bounds asset decimals so up-scaling stays inside uint128.
	MaxDecimals = 18
)

// MinimumLiquidityAmount is locked in the pair on the first deposit.
const MinimumLiquidityAmount int64 = 1_000

package types

const (
	// ContractName is recorded as the contract version name at instantiation.
	ContractName = "crates.io:cw20-base"
	// ContractVersion is the version the token code ships as.
	ContractVersion = "1.1.2"

	// AdapterContractName names the cw20 to token factory adapter.
	AdapterContractName = "crates.io:cw20-adapter"
	AdapterVersion      = "1.0.0"
)

// Storage namespaces
const (
	TokenInfoKey    = "token_info"
	BalancesKey     = "balance"
	AllowancesKey   = "allowance"
	AdapterDenomKey = "registered_denoms"
)

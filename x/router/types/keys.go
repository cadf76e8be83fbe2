package types

const (
	// ModuleName is the codespace of the router contract.
	ModuleName = "router"

	ContractName         = "crates.io:choice-router"
	ContractVersion      = "1.1.2"
	MigrateTargetVersion = "1.1.2"

	ConfigKey = "config"
)

package types

const (
	// ModuleName is the codespace of the send-to-auction forwarder.
	ModuleName = "auction"

	ContractName    = "crates.io:choice-send-to-auction"
	ContractVersion = "1.0.0"

	// ConfigKey stores the forwarder Config.
	ConfigKey = "config"

	// ForwarderSubaccountNonce is the nonce of the forwarder's own exchange
	// subaccount funds pass through on their way to the auction.
	ForwarderSubaccountNonce uint32 = 1
)

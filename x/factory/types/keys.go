package types

import (
	"encoding/binary"
)

const (
	// ModuleName is the codespace of the factory contract.
	ModuleName = "factory"

	// ContractName is recorded as the contract version name at instantiation.
	ContractName = "crates.io:choice-factory"
	// ContractVersion is the version new factories are instantiated with.
	ContractVersion = "1.1.1"
	// MigrateTargetVersion is the version Migrate moves a factory to.
	MigrateTargetVersion = "1.1.1"

	// PairLabel is the label of every pair the factory instantiates.
	PairLabel = "pair"
)

// Storage namespaces
const (
	ConfigKey         = "config"
	PairsKey          = "pair_info"
	NativeDecimalsKey = "allow_native_token"
	PendingPairsKey   = "pending_pair"
	ReplySequenceKey  = "reply_seq"
)

// Pagination of the Pairs query
const (
	DefaultPairsLimit = 10
	MaxPairsLimit     = 30
)

// ReplyKey encodes a reply id as a big endian store key.
func ReplyKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, id)
}

package types

import (
	"encoding/hex"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/address"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "wasm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// TokenFactoryDenomPrefix is the namespace of denoms created through the token factory
	TokenFactoryDenomPrefix = "factory"
)

// Store key prefixes
var (
	ContractKeyPrefix      = []byte{0x01} // contract address -> ContractInfo
	ContractStorePrefix    = []byte{0x02} // per-contract state namespace
	SequenceKey            = []byte{0x03} // instance sequence
	ParamsKey              = []byte{0x04} // host parameters
	BalanceKeyPrefix       = []byte{0x10} // account/denom -> amount
	SupplyKeyPrefix        = []byte{0x11} // denom -> total supply
	DenomAdminKeyPrefix    = []byte{0x20} // token factory denom -> admin
	DenomMetadataKeyPrefix = []byte{0x21} // token factory denom -> metadata
	SubaccountKeyPrefix    = []byte{0x30} // exchange subaccount/denom -> deposit
)

// GetContractKey returns the store key for a contract's metadata
func GetContractKey(addr sdk.AccAddress) []byte {
	return append(ContractKeyPrefix, address.MustLengthPrefix(addr)...)
}

// GetContractStorePrefix returns the prefix under which a contract's own state lives
func GetContractStorePrefix(addr sdk.AccAddress) []byte {
	return append(ContractStorePrefix, address.MustLengthPrefix(addr)...)
}

// GetBalancesPrefix returns the prefix holding every balance of an account
func GetBalancesPrefix(addr sdk.AccAddress) []byte {
	return append(BalanceKeyPrefix, address.MustLengthPrefix(addr)...)
}

// GetBalanceKey returns the store key for an account balance of one denom
func GetBalanceKey(addr sdk.AccAddress, denom string) []byte {
	return append(GetBalancesPrefix(addr), []byte(denom)...)
}

// GetSupplyKey returns the store key for a denom's total supply
func GetSupplyKey(denom string) []byte {
	return append(SupplyKeyPrefix, []byte(denom)...)
}

// GetDenomAdminKey returns the store key for a token factory denom's admin
func GetDenomAdminKey(denom string) []byte {
	return append(DenomAdminKeyPrefix, []byte(denom)...)
}

// GetDenomMetadataKey returns the store key for a token factory denom's metadata
func GetDenomMetadataKey(denom string) []byte {
	return append(DenomMetadataKeyPrefix, []byte(denom)...)
}

// GetSubaccountDepositKey returns the store key for an exchange subaccount deposit
func GetSubaccountDepositKey(subaccountID, denom string) []byte {
	key := append(SubaccountKeyPrefix, byte(len(subaccountID)))
	key = append(key, []byte(subaccountID)...)
	return append(key, []byte(denom)...)
}

// ContractAddrLen keeps contract addresses the size of account addresses so
// factory denoms nesting two of them stay within the denom length limit.
const ContractAddrLen = 20

// BuildContractAddress derives a deterministic contract address from the code
// and instance sequence.
func BuildContractAddress(codeID, instanceID uint64) sdk.AccAddress {
	key := append(sdk.Uint64ToBigEndian(codeID), sdk.Uint64ToBigEndian(instanceID)...)
	return address.Module(ModuleName, key)[:ContractAddrLen]
}

// FactoryDenom returns the token factory denom a creator owns under subdenom.
func FactoryDenom(creator, subdenom string) string {
	return fmt.Sprintf("%s/%s/%s", TokenFactoryDenomPrefix, creator, subdenom)
}

// SubaccountID returns the exchange subaccount of addr with the given nonce:
// 0x, the hex of the first 20 address bytes, then a 24 digit hex nonce.
func SubaccountID(addr sdk.AccAddress, nonce uint32) string {
	b := make([]byte, 20)
	raw := addr.Bytes()
	if len(raw) > 20 {
		raw = raw[:20]
	}
	copy(b[20-len(raw):], raw)
	return fmt.Sprintf("0x%s%024x", hex.EncodeToString(b), nonce)
}

// ValidateSubaccountID checks that id is 0x followed by 64 hex digits.
func ValidateSubaccountID(id string) error {
	if len(id) != 66 || id[:2] != "0x" {
		return ErrInvalidSubaccount.Wrapf("%q must be 0x followed by 64 hex digits", id)
	}
	if _, err := hex.DecodeString(id[2:]); err != nil {
		return ErrInvalidSubaccount.Wrapf("%q: %s", id, err)
	}
	return nil
}

// SubaccountOwnerPrefix returns the subaccount prefix owned by addr.
func SubaccountOwnerPrefix(addr sdk.AccAddress) string {
	return SubaccountID(addr, 0)[:42]
}

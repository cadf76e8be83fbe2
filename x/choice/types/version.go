package types

import (
	storetypes "cosmossdk.io/store/types"
	"github.com/Masterminds/semver/v3"

	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// ContractVersion is the name and version a contract records about itself.
type ContractVersion struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

var contractInfo = wasmtypes.NewItem[ContractVersion]("contract_info")

// SetContractVersion records name and version in the contract store.
func SetContractVersion(store storetypes.KVStore, name, version string) error {
	return contractInfo.Save(store, ContractVersion{Contract: name, Version: version})
}

// GetContractVersion loads the recorded contract version.
func GetContractVersion(store storetypes.KVStore) (ContractVersion, error) {
	return contractInfo.Load(store)
}

// MigrateVersion moves the stored version forward to target. The stored
// contract must carry the same name and must not be newer than target.
func MigrateVersion(store storetypes.KVStore, target, name string) error {
	stored, err := GetContractVersion(store)
	if err != nil {
		return err
	}
	if stored.Contract != name {
		return ErrMigrateVersion.Wrapf("can only upgrade from same contract type, have %s want %s", stored.Contract, name)
	}

	want, err := semver.StrictNewVersion(target)
	if err != nil {
		return ErrMigrateVersion.Wrapf("target version %q: %s", target, err)
	}
	have, err := semver.StrictNewVersion(stored.Version)
	if err != nil {
		return ErrMigrateVersion.Wrapf("stored version %q: %s", stored.Version, err)
	}
	if have.GreaterThan(want) {
		return ErrMigrateVersion.Wrapf("cannot downgrade from %s to %s", have, want)
	}
	if have.LessThan(want) {
		return SetContractVersion(store, name, target)
	}
	return nil
}

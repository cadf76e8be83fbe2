package types

import (
	"bytes"
	"encoding/json"

	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
)

// Item is a single JSON value stored under a fixed key of a contract store.
type Item[T any] struct {
	key []byte
}

func NewItem[T any](key string) Item[T] {
	return Item[T]{key: []byte(key)}
}

// Load returns ErrNotFound when the item was never saved.
func (i Item[T]) Load(store storetypes.KVStore) (T, error) {
	v, ok, err := i.MayLoad(store)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrNotFound.Wrapf("item %s", i.key)
	}
	return v, nil
}

func (i Item[T]) MayLoad(store storetypes.KVStore) (T, bool, error) {
	var v T
	bz := store.Get(i.key)
	if bz == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(bz, &v); err != nil {
		return v, false, ErrInvalidMsg.Wrapf("corrupt item %s: %s", i.key, err)
	}
	return v, true, nil
}

func (i Item[T]) Save(store storetypes.KVStore, v T) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return ErrInvalidMsg.Wrapf("encode item %s: %s", i.key, err)
	}
	store.Set(i.key, bz)
	return nil
}

func (i Item[T]) Remove(store storetypes.KVStore) {
	store.Delete(i.key)
}

// Map is a namespace of JSON values keyed by raw bytes, iterated in key order.
type Map[T any] struct {
	namespace []byte
}

func NewMap[T any](namespace string) Map[T] {
	// length prefix keeps namespaces from shadowing each other
	ns := append([]byte{byte(len(namespace))}, namespace...)
	return Map[T]{namespace: ns}
}

func (m Map[T]) store(store storetypes.KVStore) storetypes.KVStore {
	return prefix.NewStore(store, m.namespace)
}

func (m Map[T]) Has(store storetypes.KVStore, key []byte) bool {
	return m.store(store).Has(key)
}

// Load returns ErrNotFound when key is absent.
func (m Map[T]) Load(store storetypes.KVStore, key []byte) (T, error) {
	v, ok, err := m.MayLoad(store, key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrNotFound.Wrapf("%s[%x]", m.namespace[1:], key)
	}
	return v, nil
}

func (m Map[T]) MayLoad(store storetypes.KVStore, key []byte) (T, bool, error) {
	var v T
	bz := m.store(store).Get(key)
	if bz == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(bz, &v); err != nil {
		return v, false, ErrInvalidMsg.Wrapf("corrupt %s[%x]: %s", m.namespace[1:], key, err)
	}
	return v, true, nil
}

func (m Map[T]) Save(store storetypes.KVStore, key []byte, v T) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return ErrInvalidMsg.Wrapf("encode %s[%x]: %s", m.namespace[1:], key, err)
	}
	m.store(store).Set(key, bz)
	return nil
}

func (m Map[T]) Remove(store storetypes.KVStore, key []byte) {
	m.store(store).Delete(key)
}

// Range walks entries in ascending key order starting strictly after startAfter
// (nil starts at the beginning) and stops after limit entries when limit > 0.
func (m Map[T]) Range(store storetypes.KVStore, startAfter []byte, limit int, fn func(key []byte, v T) error) error {
	var start []byte
	if startAfter != nil {
		start = append(bytes.Clone(startAfter), 0x00)
	}

	iter := m.store(store).Iterator(start, nil)
	defer iter.Close()

	for n := 0; iter.Valid(); iter.Next() {
		if limit > 0 && n >= limit {
			break
		}
		var v T
		if err := json.Unmarshal(iter.Value(), &v); err != nil {
			return ErrInvalidMsg.Wrapf("corrupt %s[%x]: %s", m.namespace[1:], iter.Key(), err)
		}
		if err := fn(bytes.Clone(iter.Key()), v); err != nil {
			return err
		}
		n++
	}
	return nil
}

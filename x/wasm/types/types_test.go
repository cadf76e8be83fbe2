package types_test

import (
	"strings"
	"testing"

	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/choice-exchange/choice/x/wasm/types"
)

func TestSubaccountID(t *testing.T) {
	addr := sdk.AccAddress(make([]byte, 20))
	addr[19] = 0xab

	id := types.SubaccountID(addr, 1)
	require.Len(t, id, 66)
	require.Equal(t, "0x"+strings.Repeat("0", 38)+"ab"+strings.Repeat("0", 23)+"1", id)
	require.NoError(t, types.ValidateSubaccountID(id))
	require.Equal(t, id[:42], types.SubaccountOwnerPrefix(addr))

	require.ErrorIs(t, types.ValidateSubaccountID("0x12"), types.ErrInvalidSubaccount)
	require.ErrorIs(t, types.ValidateSubaccountID("0x"+strings.Repeat("z", 64)), types.ErrInvalidSubaccount)
}

func TestBuildContractAddress_Deterministic(t *testing.T) {
	a := types.BuildContractAddress(1, 1)
	require.Equal(t, a, types.BuildContractAddress(1, 1))
	require.NotEqual(t, a, types.BuildContractAddress(1, 2))
	require.NotEqual(t, a, types.BuildContractAddress(2, 1))
	require.Len(t, a, types.ContractAddrLen)
}

func TestInstantiateResponse_Parse(t *testing.T) {
	res := types.InstantiateResponse{Address: "cosmos1xyz", Data: []byte{1, 2, 3}}
	bz := res.Marshal()

	// unknown trailing varint field is skipped
	bz = protowire.AppendTag(bz, 9, protowire.VarintType)
	bz = protowire.AppendVarint(bz, 77)

	parsed, err := types.ParseInstantiateResponse(bz)
	require.NoError(t, err)
	require.Equal(t, res, parsed)

	_, err = types.ParseInstantiateResponse(nil)
	require.ErrorIs(t, err, types.ErrParseResponse)

	_, err = types.ParseInstantiateResponse([]byte{0x0a, 0x05, 'a'})
	require.ErrorIs(t, err, types.ErrParseResponse)
}

type record struct {
	Name string `json:"name"`
}

func TestMap_RangeIsExclusiveAndOrdered(t *testing.T) {
	store := dbadapter.Store{DB: dbm.NewMemDB()}
	m := types.NewMap[record]("pairs")
	other := types.NewMap[record]("pair")

	for _, k := range []string{"c", "a", "b", "d"} {
		require.NoError(t, m.Save(store, []byte(k), record{Name: k}))
	}
	require.NoError(t, other.Save(store, []byte("a"), record{Name: "shadow"}))

	var got []string
	require.NoError(t, m.Range(store, []byte("a"), 2, func(_ []byte, v record) error {
		got = append(got, v.Name)
		return nil
	}))
	require.Equal(t, []string{"b", "c"}, got)

	got = nil
	require.NoError(t, m.Range(store, nil, 0, func(_ []byte, v record) error {
		got = append(got, v.Name)
		return nil
	}))
	require.Equal(t, []string{"a", "b", "c", "d"}, got)

	_, err := m.Load(store, []byte("zz"))
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestItem_LoadSaveRemove(t *testing.T) {
	store := dbadapter.Store{DB: dbm.NewMemDB()}
	item := types.NewItem[record]("config")

	_, err := item.Load(store)
	require.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, item.Save(store, record{Name: "x"}))
	v, ok, err := item.MayLoad(store)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)

	item.Remove(store)
	_, ok, err = item.MayLoad(store)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
	p := types.DefaultParams()
	p.MaxCallDepth = 0
	require.Error(t, p.Validate())
}

package types_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	"github.com/choice-exchange/choice/x/vault/types"
)

func addr(b byte) string {
	bz := make([]byte, 20)
	bz[19] = b
	return sdk.AccAddress(bz).String()
}

func TestMessageShapes(t *testing.T) {
	cases := []struct {
		name string
		msg  any
		want string
	}{
		{"compound", types.NewCompoundMsg(), `{"compound":{}}`},
		{"withdraw", types.NewWithdrawMsg(math.NewInt(500)), `{"withdraw":{"shares":"500"}}`},
		{"config", types.NewConfigQuery(), `{"config":{}}`},
		{"total shares", types.NewTotalSharesQuery(), `{"total_shares":{}}`},
		{"user info", types.NewUserInfoQuery("inj1user"), `{"user_info":{"user":"inj1user"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bz, err := json.Marshal(tc.msg)
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(bz))
		})
	}
}

func TestNewDepositSend(t *testing.T) {
	vault := addr(9)
	msg, err := types.NewDepositSend(vault, math.NewInt(1_000))
	require.NoError(t, err)
	require.NotNil(t, msg.Send)
	require.Equal(t, vault, msg.Send.Contract)
	require.Equal(t, math.NewInt(1_000), msg.Send.Amount)

	var hook types.HookMsg
	require.NoError(t, json.Unmarshal(msg.Send.Msg, &hook))
	require.NotNil(t, hook.Deposit)
}

func TestInstantiateMsg_Validate(t *testing.T) {
	valid := func() types.InstantiateMsg {
		return types.InstantiateMsg{
			Owner:        addr(1),
			PairContract: addr(2),
			FarmContract: addr(3),
			LpToken:      addr(4),
			RewardToken:  choicetypes.TokenAssetInfo(addr(5)),
			AssetInfos: [2]choicetypes.AssetInfo{
				choicetypes.NativeAssetInfo("inj"),
				choicetypes.NativeAssetInfo("usdt"),
			},
		}
	}
	require.NoError(t, valid().Validate())

	badFarm := valid()
	badFarm.FarmContract = "farm"
	require.ErrorIs(t, badFarm.Validate(), choicetypes.ErrInvalidAddress)

	same := valid()
	same.AssetInfos[1] = same.AssetInfos[0]
	require.ErrorIs(t, same.Validate(), choicetypes.ErrInvalidAsset)

	noReward := valid()
	noReward.RewardToken = choicetypes.AssetInfo{}
	require.ErrorIs(t, noReward.Validate(), choicetypes.ErrInvalidAsset)
}

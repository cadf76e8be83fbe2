package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	pairkeeper "github.com/choice-exchange/choice/x/pair/keeper"
)

func TestQuoteCmd_Swap(t *testing.T) {
	out, err := execute(t, "quote",
		"--offer-pool", "1000000000000000000000",
		"--ask-pool", "25000000000",
		"--amount", "1000000000000000000",
		"--offer-decimals", "18",
		"--ask-decimals", "6",
	)
	require.NoError(t, err)

	var res QuoteResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	want, err := pairkeeper.ComputeSwap(
		math.NewIntWithDecimal(1, 21), math.NewInt(25_000_000_000), math.NewIntWithDecimal(1, 18), 18, 6)
	require.NoError(t, err)

	require.False(t, res.Reverse)
	require.True(t, want.ReturnAmount.Equal(res.ReturnAmount))
	require.True(t, want.CommissionAmount.Equal(res.CommissionAmount))
	require.True(t, res.CommissionAmount.Equal(
		res.Commission.FeeWallet.Add(res.Commission.Burn).Add(res.Commission.Pool)))
}

func TestQuoteCmd_Reverse(t *testing.T) {
	out, err := execute(t, "quote",
		"--offer-pool", "1000000000",
		"--ask-pool", "1000000000",
		"--amount", "1000000",
		"--reverse",
	)
	require.NoError(t, err)

	var res QuoteResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.True(t, res.Reverse)
	require.True(t, res.ReturnAmount.Equal(math.NewInt(1_000_000)))

	// offering the quoted amount returns at least what was asked
	fwd, err := pairkeeper.ComputeSwap(math.NewInt(1_000_000_000), math.NewInt(1_000_000_000), res.OfferAmount, 6, 6)
	require.NoError(t, err)
	require.True(t, fwd.ReturnAmount.GTE(res.ReturnAmount))
}

func TestQuoteCmd_InvalidFlags(t *testing.T) {
	base := []string{"quote", "--offer-pool", "100", "--ask-pool", "100"}

	huge := "1" + strings.Repeat("0", 70)
	cases := map[string][]string{
		"pools above uint128":  {"quote", "--offer-pool", huge, "--ask-pool", huge, "--amount", "1", "--reverse"},
		"amount above uint128": append(base, "--amount", choicetypes.MaxUint128.AddRaw(1).String()),
		"zero amount":          append(base, "--amount", "0"),
		"not a number":         append(base, "--amount", "ten"),
		"decimals too big":     append(base, "--amount", "10", "--offer-decimals", "19"),
		"negative decimal":     append(base, "--amount", "10", "--ask-decimals", "-1"),
		"missing amount":       base,
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
		})
	}
}

func TestQuoteCmd_ReverseDrainsPool(t *testing.T) {
	_, err := execute(t, "quote",
		"--offer-pool", "1000",
		"--ask-pool", "1000",
		"--amount", "1000",
		"--reverse",
	)
	require.Error(t, err)
}

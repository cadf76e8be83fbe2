package cmd

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	pairkeeper "github.com/choice-exchange/choice/x/pair/keeper"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
)

const (
	flagOfferPool     = "offer-pool"
	flagAskPool       = "ask-pool"
	flagAmount        = "amount"
	flagOfferDecimals = "offer-decimals"
	flagAskDecimals   = "ask-decimals"
	flagReverse       = "reverse"
)

// QuoteResult is what quote prints.
type QuoteResult struct {
	Reverse          bool            `json:"reverse"`
	OfferAmount      math.Int        `json:"offer_amount"`
	ReturnAmount     math.Int        `json:"return_amount"`
	SpreadAmount     math.Int        `json:"spread_amount"`
	CommissionAmount math.Int        `json:"commission_amount"`
	Commission       CommissionShare `json:"commission"`
}

type CommissionShare struct {
	FeeWallet math.Int `json:"fee_wallet"`
	Burn      math.Int `json:"burn"`
	Pool      math.Int `json:"pool"`
}

// QuoteCmd prices a swap against given pool reserves without a chain.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a swap quote from pool reserves",
		Long: `Compute what a constant-product swap returns, or with --reverse what it costs,
given the two pool reserves. The commission split between the fee wallet,
the burn auction and the pool is included.`,
		Example: `choiced quote --offer-pool 1000000000000000000000 --ask-pool 25000000000 \
  --amount 1000000000000000000 --offer-decimals 18 --ask-decimals 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := runQuote(cmd)
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(bz))
			return nil
		},
	}

	cmd.Flags().String(flagOfferPool, "", "reserve of the offered asset")
	cmd.Flags().String(flagAskPool, "", "reserve of the asked asset")
	cmd.Flags().String(flagAmount, "", "offer amount, or the wanted ask amount with --reverse")
	cmd.Flags().String(flagOfferDecimals, "6", "decimals of the offered asset")
	cmd.Flags().String(flagAskDecimals, "6", "decimals of the asked asset")
	cmd.Flags().Bool(flagReverse, false, "solve for the offer amount instead")
	for _, name := range []string{flagOfferPool, flagAskPool, flagAmount} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runQuote(cmd *cobra.Command) (QuoteResult, error) {
	offerPool, err := amountFlag(cmd, flagOfferPool)
	if err != nil {
		return QuoteResult{}, err
	}
	askPool, err := amountFlag(cmd, flagAskPool)
	if err != nil {
		return QuoteResult{}, err
	}
	amount, err := amountFlag(cmd, flagAmount)
	if err != nil {
		return QuoteResult{}, err
	}
	reverse, err := cmd.Flags().GetBool(flagReverse)
	if err != nil {
		return QuoteResult{}, err
	}

	if reverse {
		sim, err := pairkeeper.ComputeOfferAmount(offerPool, askPool, amount)
		if err != nil {
			return QuoteResult{}, err
		}
		return newQuoteResult(true, sim.OfferAmount, amount, sim.SpreadAmount, sim.CommissionAmount), nil
	}

	offerDecimals, err := decimalsFlag(cmd, flagOfferDecimals)
	if err != nil {
		return QuoteResult{}, err
	}
	askDecimals, err := decimalsFlag(cmd, flagAskDecimals)
	if err != nil {
		return QuoteResult{}, err
	}
	sim, err := pairkeeper.ComputeSwap(offerPool, askPool, amount, offerDecimals, askDecimals)
	if err != nil {
		return QuoteResult{}, err
	}
	return newQuoteResult(false, amount, sim.ReturnAmount, sim.SpreadAmount, sim.CommissionAmount), nil
}

func newQuoteResult(reverse bool, offer, ret, spread, commission math.Int) QuoteResult {
	split := pairkeeper.SplitCommission(commission)
	return QuoteResult{
		Reverse:          reverse,
		OfferAmount:      offer,
		ReturnAmount:     ret,
		SpreadAmount:     spread,
		CommissionAmount: commission,
		Commission: CommissionShare{
			FeeWallet: split.FeeWallet,
			Burn:      split.Burn,
			Pool:      split.Pool,
		},
	}
}

func amountFlag(cmd *cobra.Command, name string) (math.Int, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return math.Int{}, err
	}
	amount, ok := math.NewIntFromString(raw)
	if !ok || !amount.IsPositive() {
		return math.Int{}, fmt.Errorf("--%s must be a positive integer, got %q", name, raw)
	}
	if !choicetypes.FitsUint128(amount) {
		return math.Int{}, fmt.Errorf("--%s must not exceed %s", name, choicetypes.MaxUint128)
	}
	return amount, nil
}

func decimalsFlag(cmd *cobra.Command, name string) (uint8, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	decimals, err := cast.ToUint64E(raw)
	if err != nil || decimals > pairtypes.MaxDecimals {
		return 0, fmt.Errorf("--%s must be between 0 and %d, got %q", name, pairtypes.MaxDecimals, raw)
	}
	return uint8(decimals), nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/choice-exchange/choice/api"
	auctiontypes "github.com/choice-exchange/choice/x/auction/types"
	cw20types "github.com/choice-exchange/choice/x/cw20/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	pairtypes "github.com/choice-exchange/choice/x/pair/types"
	routertypes "github.com/choice-exchange/choice/x/router/types"
)

// VersionCmd prints the gateway version and every contract version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the contract versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("choiced %s\n", api.Version)
			for _, c := range contractVersions() {
				cmd.Printf("%-34s %s\n", c[0], c[1])
			}
		},
	}
}

func contractVersions() [][2]string {
	return [][2]string{
		{pairtypes.ContractName, pairtypes.ContractVersion},
		{factorytypes.ContractName, factorytypes.ContractVersion},
		{routertypes.ContractName, routertypes.ContractVersion},
		{auctiontypes.ContractName, auctiontypes.ContractVersion},
		{cw20types.ContractName, cw20types.ContractVersion},
		{cw20types.AdapterContractName, cw20types.AdapterVersion},
	}
}

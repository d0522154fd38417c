package query

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
)

// proxyCmd represents the proxy command.
// Example:
//		sdcli query proxy --creator=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var proxyCmd = &cobra.Command{
	Use:     "proxy",
	Short:   "Get a delegation proxy by address or creator",
	Example: `sdcli query proxy --creator=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		if addressFlag == "" && creatorFlag == "" {
			utils.Error("Either --address or --creator is required\n")
		}
		utils.PrintResult(utils.Call("sd.GetProxy", rpc.GetProxyArgs{
			Address: addressFlag,
			Creator: creatorFlag,
		}))
	},
}

// shareCmd represents the share command.
// Example:
//		sdcli query share --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --depositor=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var shareCmd = &cobra.Command{
	Use:     "share",
	Short:   "Get the pool position of a depositor",
	Example: `sdcli query share --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --depositor=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetPoolShare", rpc.GetPoolShareArgs{
			Proxy:     proxyFlag,
			Depositor: depositorFlag,
		}))
	},
}

// voteCmd represents the vote command.
// Example:
//		sdcli query vote --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --axis=DecayPeriod
var voteCmd = &cobra.Command{
	Use:     "vote",
	Short:   "Get the latest vote of a proxy",
	Example: `sdcli query vote --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --axis=DecayPeriod`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetVote", rpc.GetVoteArgs{
			Proxy: proxyFlag,
			Axis:  axisFlag,
		}))
	},
}

// governanceCmd represents the governance command.
// Example:
//		sdcli query governance --axis=Fee
var governanceCmd = &cobra.Command{
	Use:     "governance",
	Short:   "Get the stake weighted outcome of an axis",
	Example: `sdcli query governance --axis=Fee`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetGovernanceResult", rpc.GetGovernanceResultArgs{
			Axis: axisFlag,
		}))
	},
}

func init() {
	proxyCmd.Flags().StringVar(&addressFlag, "address", "", "Proxy address")
	proxyCmd.Flags().StringVar(&creatorFlag, "creator", "", "Creator address")

	shareCmd.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy address")
	shareCmd.Flags().StringVar(&depositorFlag, "depositor", "", "Depositor address")
	shareCmd.MarkFlagRequired("proxy")
	shareCmd.MarkFlagRequired("depositor")

	voteCmd.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy address")
	voteCmd.MarkFlagRequired("proxy")
	for _, c := range []*cobra.Command{voteCmd, governanceCmd} {
		c.Flags().StringVar(&axisFlag, "axis", "", "Vote axis (Fee|SlippageFee|DecayPeriod|ReferralShare|GovernanceShare)")
		c.MarkFlagRequired("axis")
	}
}

package query

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
)

// powerCmd represents the power command.
// Example:
//		sdcli query power --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --height=120 --category=STAKE
var powerCmd = &cobra.Command{
	Use:     "power",
	Short:   "Get the voting power of an address at a block",
	Example: `sdcli query power --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --height=120 --category=STAKE`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetPowerAtBlock", rpc.GetPowerAtBlockArgs{
			Address:     addressFlag,
			BlockHeight: common.JSONUint64(heightFlag),
			Category:    categoryFlag,
		}))
	},
}

// currentCmd represents the current command.
// Example:
//		sdcli query current --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var currentCmd = &cobra.Command{
	Use:     "current",
	Short:   "Get the current voting power of an address",
	Example: `sdcli query current --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetCurrentPower", rpc.GetCurrentPowerArgs{
			Address:  addressFlag,
			Category: categoryFlag,
		}))
	},
}

// checkpointsCmd represents the checkpoints command.
// Example:
//		sdcli query checkpoints --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --category=GOVERNANCE
var checkpointsCmd = &cobra.Command{
	Use:     "checkpoints",
	Short:   "Get the voting power history of an address",
	Example: `sdcli query checkpoints --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --category=GOVERNANCE`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetCheckpoints", rpc.GetCheckpointsArgs{
			Address:  addressFlag,
			Category: categoryFlag,
			From:     common.JSONUint64(fromFlag),
			To:       common.JSONUint64(toFlag),
		}))
	},
}

// balanceCmd represents the balance command.
// Example:
//		sdcli query balance --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var balanceCmd = &cobra.Command{
	Use:     "balance",
	Short:   "Get token and direct balances of an address",
	Example: `sdcli query balance --address=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetBalance", rpc.GetBalanceArgs{
			Address: addressFlag,
			Spender: spenderFlag,
		}))
	},
}

func init() {
	for _, c := range []*cobra.Command{powerCmd, currentCmd, checkpointsCmd, balanceCmd} {
		c.Flags().StringVar(&addressFlag, "address", "", "Address to query")
		c.MarkFlagRequired("address")
	}
	for _, c := range []*cobra.Command{powerCmd, currentCmd, checkpointsCmd} {
		c.Flags().StringVar(&categoryFlag, "category", "STAKE", "Power category (STAKE|GOVERNANCE)")
	}
	checkpointsCmd.Flags().Uint64Var(&fromFlag, "from", 0, "First checkpoint index")
	checkpointsCmd.Flags().Uint64Var(&toFlag, "to", 0, "Checkpoint index to stop before, 0 for the latest")
	powerCmd.Flags().Uint64Var(&heightFlag, "height", 0, "Block height")
	powerCmd.MarkFlagRequired("height")
	balanceCmd.Flags().StringVar(&spenderFlag, "spender", "", "Also report the allowance granted to this address")
}

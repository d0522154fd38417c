package query

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
)

// statusCmd represents the status command.
// Example:
//		sdcli query status
var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Get node status",
	Example: `sdcli query status`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetStatus", rpc.GetStatusArgs{}))
	},
}

// versionCmd represents the version command.
// Example:
//		sdcli query version
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Get the version of the node",
	Example: `sdcli query version`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetVersion", rpc.GetVersionArgs{}))
	},
}

package query

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
)

// eventsCmd represents the events command.
// Example:
//		sdcli query events --from=0 --to=100
var eventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "Get audit log entries by index range",
	Example: `sdcli query events --from=0 --to=100`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.PrintResult(utils.Call("sd.GetEvents", rpc.GetEventsArgs{
			From: common.JSONUint64(fromFlag),
			To:   common.JSONUint64(toFlag),
		}))
	},
}

func init() {
	eventsCmd.Flags().Uint64Var(&fromFlag, "from", 0, "First event index")
	eventsCmd.Flags().Uint64Var(&toFlag, "to", 0, "Event index to stop before, 0 for the latest")
}

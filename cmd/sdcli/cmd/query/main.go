package query

import (
	"github.com/spf13/cobra"
)

var (
	addressFlag   string
	creatorFlag   string
	spenderFlag   string
	proxyFlag     string
	depositorFlag string
	categoryFlag  string
	axisFlag      string
	heightFlag    uint64
	fromFlag      uint64
	toFlag        uint64
)

// QueryCmd represents the query command
var QueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the ledger state",
}

func init() {
	QueryCmd.AddCommand(statusCmd)
	QueryCmd.AddCommand(versionCmd)
	QueryCmd.AddCommand(powerCmd)
	QueryCmd.AddCommand(currentCmd)
	QueryCmd.AddCommand(checkpointsCmd)
	QueryCmd.AddCommand(balanceCmd)
	QueryCmd.AddCommand(proxyCmd)
	QueryCmd.AddCommand(shareCmd)
	QueryCmd.AddCommand(voteCmd)
	QueryCmd.AddCommand(governanceCmd)
	QueryCmd.AddCommand(eventsCmd)
}

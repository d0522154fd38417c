package tx

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/rpc"
)

// Common flags used in Tx sub commands.
var (
	fromFlag       string
	toFlag         string
	proxyFlag      string
	spenderFlag    string
	controllerFlag string
	delegateeFlag  string
	amountFlag     string
	categoryFlag   string
	axisFlag       string
	valueFlag      string
	approveFlag    bool
)

// TxCmd represents the Tx command
var TxCmd = &cobra.Command{
	Use:   "tx",
	Short: "Submit transactions",
	Long:  `Submit transactions. The node must run with rpc.txEnabled.`,
}

func init() {
	TxCmd.AddCommand(sendCmd)
	TxCmd.AddCommand(approveCmd)
	TxCmd.AddCommand(createCmd)
	TxCmd.AddCommand(stakeCmd)
	TxCmd.AddCommand(unstakeCmd)
	TxCmd.AddCommand(claimCmd)
	TxCmd.AddCommand(voteCmd)
	TxCmd.AddCommand(controllerCmd)
	TxCmd.AddCommand(proxyDelegateCmd)
	TxCmd.AddCommand(delegateCmd)
	TxCmd.AddCommand(undelegateCmd)
	TxCmd.AddCommand(rewardCmd)
}

func parseAmount(s string) *big.Int {
	amount, ok := types.ParseAmount(s)
	if !ok {
		utils.Error("Failed to parse amount %q\n", s)
	}
	return amount
}

func broadcast(tx types.Tx) {
	raw, err := types.TxToBytes(tx)
	if err != nil {
		utils.Error("Failed to encode transaction: %v\n", err)
	}
	res := utils.Call("sd.BroadcastTx", rpc.BroadcastTxArgs{TxBytes: hex.EncodeToString(raw)})
	fmt.Printf("Successfully executed %v:\n", tx)
	utils.PrintResult(res)
}

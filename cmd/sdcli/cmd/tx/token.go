package tx

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// sendCmd represents the send command
// Example:
//		sdcli tx send --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --to=0x9F1233798E905E173560071255140b4A8aBd3Ec6 --amount=10
var sendCmd = &cobra.Command{
	Use:     "send",
	Short:   "Send tokens",
	Example: `sdcli tx send --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --to=0x9F1233798E905E173560071255140b4A8aBd3Ec6 --amount=10`,
	Run: func(cmd *cobra.Command, args []string) {
		from := utils.ParseAddress("from", fromFlag)
		to := utils.ParseAddress("to", toFlag)
		if from == to {
			utils.Error("The from and to address cannot be identical\n")
		}
		broadcast(&types.SendTx{From: from, To: to, Amount: parseAmount(amountFlag)})
	},
}

// approveCmd represents the approve command
// Example:
//		sdcli tx approve --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --spender=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --amount=500
var approveCmd = &cobra.Command{
	Use:     "approve",
	Short:   "Allow a spender to pull tokens",
	Example: `sdcli tx approve --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --spender=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --amount=500`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.ApproveTx{
			Owner:   utils.ParseAddress("from", fromFlag),
			Spender: utils.ParseAddress("spender", spenderFlag),
			Amount:  parseAmount(amountFlag),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{sendCmd, approveCmd} {
		c.Flags().StringVar(&fromFlag, "from", "", "Address to send from")
		c.Flags().StringVar(&amountFlag, "amount", "0", "Amount in tokens, or wei with a wei suffix")
		c.MarkFlagRequired("from")
		c.MarkFlagRequired("amount")
	}
	sendCmd.Flags().StringVar(&toFlag, "to", "", "Address to send to")
	sendCmd.MarkFlagRequired("to")
	approveCmd.Flags().StringVar(&spenderFlag, "spender", "", "Address allowed to spend")
	approveCmd.MarkFlagRequired("spender")
}

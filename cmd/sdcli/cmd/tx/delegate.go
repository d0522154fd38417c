package tx

import (
	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// delegateCmd represents the delegate command
// Example:
//		sdcli tx delegate --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --delegatee=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --category=STAKE --amount=100
var delegateCmd = &cobra.Command{
	Use:   "delegate",
	Short: "Delegate voting power of a category",
	Long: `Delegate voting power of a category. The amount is escrowed from the token
balance, a zero amount moves the existing balance to the new delegatee.`,
	Example: `sdcli tx delegate --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --delegatee=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --category=STAKE --amount=100`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.DelegateTx{
			Source:    utils.ParseAddress("from", fromFlag),
			Delegatee: utils.ParseAddress("delegatee", delegateeFlag),
			Category:  parseCategory(categoryFlag),
			Amount:    parseAmount(amountFlag),
		})
	},
}

// undelegateCmd represents the undelegate command
// Example:
//		sdcli tx undelegate --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --category=STAKE --amount=100
var undelegateCmd = &cobra.Command{
	Use:     "undelegate",
	Short:   "Withdraw delegated balance of a category",
	Example: `sdcli tx undelegate --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --category=STAKE --amount=100`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.UndelegateTx{
			Source:   utils.ParseAddress("from", fromFlag),
			Category: parseCategory(categoryFlag),
			Amount:   parseAmount(amountFlag),
		})
	},
}

func parseCategory(s string) types.Category {
	category, err := types.ParseCategory(s)
	if err != nil {
		utils.Error("%v\n", err)
	}
	return category
}

func init() {
	for _, c := range []*cobra.Command{delegateCmd, undelegateCmd} {
		c.Flags().StringVar(&fromFlag, "from", "", "Address submitting the transaction")
		c.Flags().StringVar(&categoryFlag, "category", "STAKE", "Power category")
		c.Flags().StringVar(&amountFlag, "amount", "0", "Amount in tokens, or wei with a wei suffix")
		c.MarkFlagRequired("from")
	}
	delegateCmd.Flags().StringVar(&delegateeFlag, "delegatee", "", "Delegatee address")
	delegateCmd.MarkFlagRequired("delegatee")
	undelegateCmd.MarkFlagRequired("amount")
}

package tx

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

// createCmd represents the create command
// Example:
//		sdcli tx create --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var createCmd = &cobra.Command{
	Use:     "create",
	Short:   "Deploy a new delegation proxy",
	Example: `sdcli tx create --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.CreateProxyTx{Source: utils.ParseAddress("from", fromFlag)})
	},
}

// stakeCmd represents the stake command
// Example:
//		sdcli tx stake --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=500 --approve
var stakeCmd = &cobra.Command{
	Use:     "stake",
	Short:   "Stake tokens in a delegation proxy",
	Example: `sdcli tx stake --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=500 --approve`,
	Run: func(cmd *cobra.Command, args []string) {
		proxy := utils.ParseAddress("proxy", proxyFlag)
		from := utils.ParseAddress("from", fromFlag)
		amount := parseAmount(amountFlag)
		if approveFlag {
			broadcast(&types.ApproveTx{Owner: from, Spender: proxy, Amount: amount})
		}
		broadcast(&types.DelegateStakingTx{Proxy: proxy, Source: from, Amount: amount})
	},
}

// unstakeCmd represents the unstake command
// Example:
//		sdcli tx unstake --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=500
var unstakeCmd = &cobra.Command{
	Use:     "unstake",
	Short:   "Withdraw principal from a delegation proxy",
	Example: `sdcli tx unstake --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=500`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.UnstakeTx{
			Proxy:  utils.ParseAddress("proxy", proxyFlag),
			Source: utils.ParseAddress("from", fromFlag),
			Amount: parseAmount(amountFlag),
		})
	},
}

// claimCmd represents the claim command
// Example:
//		sdcli tx claim --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab
var claimCmd = &cobra.Command{
	Use:     "claim",
	Short:   "Claim the pending reward of a proxy position",
	Example: `sdcli tx claim --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.ClaimRewardTx{
			Proxy:  utils.ParseAddress("proxy", proxyFlag),
			Source: utils.ParseAddress("from", fromFlag),
		})
	},
}

// voteCmd represents the vote command
// Example:
//		sdcli tx vote --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --axis=ReferralShare --value=0.08
//		sdcli tx vote --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --axis=DecayPeriod --value=120
var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote on a governance axis as the proxy controller",
	Long: `Vote on a governance axis as the proxy controller. DecayPeriod takes seconds,
the other axes take fractions such as 0.08 for 8%.`,
	Example: `sdcli tx vote --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --axis=ReferralShare --value=0.08`,
	Run: func(cmd *cobra.Command, args []string) {
		axis, err := types.ParseVoteAxis(axisFlag)
		if err != nil {
			utils.Error("%v\n", err)
		}
		broadcast(&types.DelegateVoteTx{
			Proxy:  utils.ParseAddress("proxy", proxyFlag),
			Source: utils.ParseAddress("from", fromFlag),
			Axis:   axis,
			Value:  parseVoteValue(axis, valueFlag),
		})
	},
}

func parseVoteValue(axis types.VoteAxis, s string) *big.Int {
	if axis == types.AxisDecayPeriod {
		value, ok := new(big.Int).SetString(s, 10)
		if !ok {
			utils.Error("Failed to parse value %q\n", s)
		}
		return value
	}
	return parseAmount(s)
}

// controllerCmd represents the controller command
// Example:
//		sdcli tx controller --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --controller=0x9F1233798E905E173560071255140b4A8aBd3Ec6
var controllerCmd = &cobra.Command{
	Use:     "controller",
	Short:   "Hand the control of a proxy to another address",
	Example: `sdcli tx controller --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --controller=0x9F1233798E905E173560071255140b4A8aBd3Ec6`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.SetControllerTx{
			Proxy:      utils.ParseAddress("proxy", proxyFlag),
			Source:     utils.ParseAddress("from", fromFlag),
			Controller: utils.ParseAddress("controller", controllerFlag),
		})
	},
}

// proxyDelegateCmd represents the proxy-delegate command
// Example:
//		sdcli tx proxy-delegate --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --delegatee=0x9F1233798E905E173560071255140b4A8aBd3Ec6
var proxyDelegateCmd = &cobra.Command{
	Use:     "proxy-delegate",
	Short:   "Route the STAKE power of a proxy to another address",
	Example: `sdcli tx proxy-delegate --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --delegatee=0x9F1233798E905E173560071255140b4A8aBd3Ec6`,
	Run: func(cmd *cobra.Command, args []string) {
		delegatee := common.Address{}
		if delegateeFlag != "" {
			delegatee = utils.ParseAddress("delegatee", delegateeFlag)
		}
		broadcast(&types.ProxyDelegateTx{
			Proxy:     utils.ParseAddress("proxy", proxyFlag),
			Source:    utils.ParseAddress("from", fromFlag),
			Delegatee: delegatee,
		})
	},
}

// rewardCmd represents the reward command
// Example:
//		sdcli tx reward --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=150
var rewardCmd = &cobra.Command{
	Use:     "reward",
	Short:   "Deposit rewards into a delegation proxy",
	Example: `sdcli tx reward --proxy=0x7d73424a8256c0b2ba245e5d5a3de8820e45f390 --from=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab --amount=150`,
	Run: func(cmd *cobra.Command, args []string) {
		broadcast(&types.DepositRewardTx{
			Proxy:  utils.ParseAddress("proxy", proxyFlag),
			Source: utils.ParseAddress("from", fromFlag),
			Amount: parseAmount(amountFlag),
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, stakeCmd, unstakeCmd, claimCmd, voteCmd, controllerCmd, proxyDelegateCmd, rewardCmd} {
		c.Flags().StringVar(&fromFlag, "from", "", "Address submitting the transaction")
		c.MarkFlagRequired("from")
	}
	for _, c := range []*cobra.Command{stakeCmd, unstakeCmd, claimCmd, voteCmd, controllerCmd, proxyDelegateCmd, rewardCmd} {
		c.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy address")
		c.MarkFlagRequired("proxy")
	}
	for _, c := range []*cobra.Command{stakeCmd, unstakeCmd, rewardCmd} {
		c.Flags().StringVar(&amountFlag, "amount", "0", "Amount in tokens, or wei with a wei suffix")
		c.MarkFlagRequired("amount")
	}
	stakeCmd.Flags().BoolVar(&approveFlag, "approve", false, "Approve the proxy for the amount first")
	voteCmd.Flags().StringVar(&axisFlag, "axis", "", "Vote axis (Fee|SlippageFee|DecayPeriod|ReferralShare|GovernanceShare)")
	voteCmd.Flags().StringVar(&valueFlag, "value", "", "Vote value")
	voteCmd.MarkFlagRequired("axis")
	voteCmd.MarkFlagRequired("value")
	controllerCmd.Flags().StringVar(&controllerFlag, "controller", "", "New controller address")
	controllerCmd.MarkFlagRequired("controller")
	proxyDelegateCmd.Flags().StringVar(&delegateeFlag, "delegatee", "", "Delegatee address, empty to route the power back to the proxy")
}

package cmd

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

var allocFlags []string

// initCmd represents the init command
// Example:
//		stakedelegation init --alloc=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab=1500000000
var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize node configuration and genesis.",
	Example: `stakedelegation init --alloc=0x2E833968E5bB786Ae419c4d13189fB081Cc43bab=1500000000`,
	Run:     runInit,
}

func init() {
	initCmd.Flags().StringSliceVar(&allocFlags, "alloc", []string{}, "Genesis allocations as address=amount, amount in tokens")
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	genesis, err := buildGenesis(viper.GetString(common.CfgChainID), allocFlags)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Invalid genesis allocation")
	}

	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		log.WithFields(log.Fields{"err": err, "path": cfgPath}).Fatal("Folder already exists!")
	}

	if err := os.Mkdir(cfgPath, 0700); err != nil {
		log.WithFields(log.Fields{"err": err, "path": cfgPath}).Fatal("Failed to create config folder")
	}

	if err := common.WriteInitialConfig(path.Join(cfgPath, "config.yaml")); err != nil {
		log.WithFields(log.Fields{"err": err, "path": cfgPath}).Fatal("Failed to write config")
	}

	data, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to encode genesis")
	}
	if err := common.WriteFileAtomic(path.Join(cfgPath, "genesis.json"), data, 0600); err != nil {
		log.WithFields(log.Fields{"err": err, "path": cfgPath}).Fatal("Failed to write genesis")
	}
}

func buildGenesis(chainID string, allocs []string) (*types.Genesis, error) {
	genesis := &types.Genesis{ChainID: chainID, Allocations: []types.Allocation{}}
	for _, alloc := range allocs {
		parts := strings.SplitN(alloc, "=", 2)
		if len(parts) != 2 || !common.IsHexAddress(parts[0]) {
			return nil, errors.Errorf("malformed allocation %q, expected address=amount", alloc)
		}
		amount, ok := types.ParseAmount(parts[1])
		if !ok {
			return nil, errors.Errorf("malformed amount in %q", alloc)
		}
		genesis.Allocations = append(genesis.Allocations, types.Allocation{
			Address: common.HexToAddress(parts[0]),
			Amount:  amount,
		})
	}
	return genesis, genesis.Validate()
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/node"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

var genesisPath string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stake delegation node.",
	Run:   runStart,
}

func init() {
	startCmd.Flags().StringVar(&genesisPath, "genesis", "", "genesis file (default is <config>/genesis.json)")
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	dataPath := getDataPath()
	backendName := viper.GetString(common.CfgStorageBackend)
	db, err := backend.Open(backendName, dataPath, viper.GetInt(common.CfgStorageCacheSize))
	if err != nil {
		log.WithFields(log.Fields{"err": err, "backend": backendName, "path": dataPath}).Fatal("Failed to open the db")
	}
	defer db.Close()

	if len(genesisPath) == 0 {
		genesisPath = path.Join(cfgPath, "genesis.json")
	}
	var genesis *types.Genesis
	if common.FileExists(genesisPath) {
		genesis, err = types.LoadGenesis(genesisPath)
		if err != nil {
			log.WithFields(log.Fields{"err": err, "path": genesisPath}).Fatal("Failed to load genesis")
		}
	}

	chainID := viper.GetString(common.CfgChainID)
	if genesis != nil && genesis.ChainID != chainID {
		log.WithFields(log.Fields{"genesis": genesis.ChainID, "config": chainID}).Fatal("Chain ID mismatch")
	}

	params := &node.Params{
		ChainID:       chainID,
		DB:            db,
		Genesis:       genesis,
		BlockInterval: time.Duration(viper.GetInt(common.CfgLedgerBlockIntervalSecs)) * time.Second,
	}
	n, err := node.NewNode(params)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to create node")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := n.Start(ctx); err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("Failed to start node")
	}

	<-ctx.Done()
	log.Info("Shutting down")
	n.Stop()
	n.Wait()
}

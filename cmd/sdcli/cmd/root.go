package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/query"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/tx"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd/utils"
)

var cfgPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sdcli",
	Short: "Stake delegation client",
	Long:  `Command line client of the stake delegation node.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", getDefaultConfigPath(), fmt.Sprintf("config path (default is %s)", getDefaultConfigPath()))
	RootCmd.PersistentFlags().String("endpoint", "", "RPC endpoint of the node")
	viper.BindPFlag(utils.CfgRemoteRPCEndpoint, RootCmd.PersistentFlags().Lookup("endpoint"))
	RootCmd.PersistentFlags().Bool("debug", false, "Dump server responses")
	viper.BindPFlag(utils.CfgDebug, RootCmd.PersistentFlags().Lookup("debug"))

	RootCmd.AddCommand(tx.TxCmd)
	RootCmd.AddCommand(query.QueryCmd)
	RootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.AddConfigPath(cfgPath)

	// Search config (without extension).
	viper.SetConfigName("config")

	viper.SetEnvPrefix("SD")
	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func getDefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return path.Join(home, ".sdcli")
}

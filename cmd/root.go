package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"startex/logx"
)

// GlobalConfig carries the flags shared by every command
type GlobalConfig struct {
	Network      string
	NetworksFile string
	TuningFile   string
	DBPath       string
	Provider     string
	KeyFile      string
	WalletdURL   string
	PgDSN        string
	WalletID     string
}

var globalConfig GlobalConfig

var rootCmd = &cobra.Command{
	Use:   "startex",
	Short: "Startex marketplace CLI",
	Long:  "Command line interface for launching and trading tokenized startups on the startex marketplace.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalConfig.Network, "network", "n", "", "network to use (localnet, testnet, mainnet)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.NetworksFile, "networks-file", "c", "", "path to networks.yml")
	rootCmd.PersistentFlags().StringVar(&globalConfig.TuningFile, "tuning-file", "", "path to tuning.ini")
	rootCmd.PersistentFlags().StringVar(&globalConfig.DBPath, "db", "startex.db", "path to the local state database")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.Provider, "provider", "p", "custody", "wallet provider (custody, walletd)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.KeyFile, "key-file", "k", "startex.key", "custody provider seed file")
	rootCmd.PersistentFlags().StringVar(&globalConfig.WalletdURL, "walletd-url", "", "wallet daemon URL, overrides the network preset")
	rootCmd.PersistentFlags().StringVar(&globalConfig.PgDSN, "pg-dsn", "", "postgres DSN for the custody keystore, replaces the key file")
	rootCmd.PersistentFlags().StringVar(&globalConfig.WalletID, "wallet-id", "default", "wallet id inside the postgres keystore")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"startex/logx"
)

type BalanceConfig struct {
	Address string
	AssetID uint64
}

var balanceConfig BalanceConfig

var balanceCmd = &cobra.Command{
	Use:   "balance [flags]",
	Short: "Show an account's startup token balance",
	Run: func(cmd *cobra.Command, args []string) {
		if err := showBalance(balanceConfig); err != nil {
			logx.Error("BALANCE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVar(&balanceConfig.Address, "address", "", "account address, defaults to the connected account")
	balanceCmd.Flags().Uint64Var(&balanceConfig.AssetID, "asset", 0, "asset id of the startup token")
}

func showBalance(cfg BalanceConfig) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	balance, err := a.service.AssetBalance(ctx, cfg.Address, cfg.AssetID)
	if err != nil {
		return err
	}
	fmt.Printf("Asset %d balance: %s\n", cfg.AssetID, balance.Dec())
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"startex/logx"
)

type TransferConfig struct {
	To      string
	AssetID uint64
	Amount  string
}

var transferConfig TransferConfig

var transferCmd = &cobra.Command{
	Use:   "transfer [flags]",
	Short: "Transfer startup tokens to another account",
	Long: `This command sends startup tokens from the connected account to the
specified recipient address.

Examples:
  # Transfer 1000 base units of asset 42
  transfer -t 7XUjkRPJmCoRS7QEPWfDdtcwwMbSdLwh9AW2R1L6mNar --asset 42 -a 1_000`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := transferTokens(transferConfig); err != nil {
			logx.Error("TRANSFER CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVarP(&transferConfig.To, "to", "t", "", "address of recipient")
	transferCmd.Flags().Uint64Var(&transferConfig.AssetID, "asset", 0, "asset id of the startup token")
	transferCmd.Flags().StringVarP(&transferConfig.Amount, "amount", "a", "", "amount in the asset's base units")
}

func transferTokens(cfg TransferConfig) error {
	amount, err := parseAmount(cfg.Amount)
	if err != nil {
		return fmt.Errorf("could not parse amount: %w", err)
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.TransferTokens(ctx, cfg.To, cfg.AssetID, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Transferred %s of asset %d to %s\n", cfg.Amount, cfg.AssetID, cfg.To)
	fmt.Printf("  tx id: %s (round %d)\n", result.TxID, result.ConfirmedRound)
	return nil
}

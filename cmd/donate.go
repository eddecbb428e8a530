package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"startex/logx"
)

type DonateConfig struct {
	To     string
	Amount string
	Note   string
}

var donateConfig DonateConfig

var donateCmd = &cobra.Command{
	Use:   "donate [flags]",
	Short: "Donate native tokens to a startup creator",
	Run: func(cmd *cobra.Command, args []string) {
		if err := donate(donateConfig); err != nil {
			logx.Error("DONATE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(donateCmd)

	donateCmd.Flags().StringVarP(&donateConfig.To, "to", "t", "", "recipient address")
	donateCmd.Flags().StringVarP(&donateConfig.Amount, "amount", "a", "", "amount in whole units, e.g. 1.5")
	donateCmd.Flags().StringVarP(&donateConfig.Note, "note", "m", "", "note attached to the payment")
}

func donate(cfg DonateConfig) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.Donate(ctx, cfg.To, cfg.Amount, cfg.Note)
	if err != nil {
		return err
	}
	fmt.Printf("Donated %s to %s\n", cfg.Amount, cfg.To)
	fmt.Printf("  tx id: %s (round %d)\n", result.TxID, result.ConfirmedRound)
	return nil
}

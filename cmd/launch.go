package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"startex/logx"
	"startex/marketplace"
)

type LaunchConfig struct {
	Name        string
	Description string
	GithubRepo  string
	UnitName    string
	Supply      string
	Decimals    uint32
	Fee         string
}

var launchConfig LaunchConfig

// launchCmd runs the full register-then-tokenize flow
var launchCmd = &cobra.Command{
	Use:   "launch [flags]",
	Short: "Register a startup and mint its token",
	Long: `This command registers a startup in the on-chain registry, waits for the
registration to confirm, then asks the token factory to mint the startup's
asset under the confirmed registry id.

Examples:
  # Launch with a 10 token fee and one million units of supply
  launch --name "Acme Robotics" --repo acme/robots --unit ACME --supply 1_000_000 --fee 10`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := launchStartup(launchConfig); err != nil {
			logx.Error("LAUNCH CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().StringVar(&launchConfig.Name, "name", "", "startup name")
	launchCmd.Flags().StringVar(&launchConfig.Description, "description", "", "short startup description")
	launchCmd.Flags().StringVar(&launchConfig.GithubRepo, "repo", "", "github repository (org/name)")
	launchCmd.Flags().StringVar(&launchConfig.UnitName, "unit", "", "asset unit name")
	launchCmd.Flags().StringVar(&launchConfig.Supply, "supply", "", "total asset supply in base units")
	launchCmd.Flags().Uint32Var(&launchConfig.Decimals, "decimals", 6, "asset decimals")
	launchCmd.Flags().StringVar(&launchConfig.Fee, "fee", "", "launch fee in whole units, paid to the treasury")
}

func launchStartup(cfg LaunchConfig) error {
	supply, err := parseAmount(cfg.Supply)
	if err != nil {
		return fmt.Errorf("could not parse supply: %w", err)
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.service.LaunchStartup(ctx, marketplace.LaunchParams{
		Name:        cfg.Name,
		Description: cfg.Description,
		GithubRepo:  cfg.GithubRepo,
		UnitName:    cfg.UnitName,
		Supply:      supply,
		Decimals:    cfg.Decimals,
		Fee:         cfg.Fee,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Launched %s\n", record.Name)
	fmt.Printf("  startup id: %d\n", record.StartupID)
	fmt.Printf("  asset id:   %d\n", record.AssetID)
	fmt.Printf("  tx id:      %s\n", record.TokenizeTxID)
	return nil
}

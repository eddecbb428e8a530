package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"startex/events"
	"startex/logx"
)

var launchesCmd = &cobra.Command{
	Use:   "launches",
	Short: "Work with the local launch history",
}

var launchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded launches, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listLaunches(); err != nil {
			logx.Error("LAUNCHES CLI", err)
		}
	},
}

var launchesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the local launch history",
	Long:  "Clears the locally cached launch history. On-chain state is untouched.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := clearLaunches(); err != nil {
			logx.Error("LAUNCHES CLI", err)
		}
	},
}

var launchesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow launches recorded by any process sharing the database",
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchLaunches(); err != nil {
			logx.Error("LAUNCHES CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(launchesCmd)
	launchesCmd.AddCommand(launchesListCmd)
	launchesCmd.AddCommand(launchesClearCmd)
	launchesCmd.AddCommand(launchesWatchCmd)
}

func listLaunches() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	records := a.cache.LoadAll()
	if len(records) == 0 {
		fmt.Println("No launches recorded")
		return nil
	}
	for _, r := range records {
		when := time.Unix(r.RecordedAt, 0).Format(time.DateTime)
		fmt.Printf("%s  #%d %-20s asset=%d supply=%s\n", when, r.StartupID, r.Name, r.AssetID, r.Supply.Dec())
	}
	return nil
}

func watchLaunches() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id, ch := a.bus.Subscribe()
	defer a.bus.Unsubscribe(id)
	a.cache.Watch(ctx, time.Duration(a.tuning.CacheWatchIntervalS)*time.Second)

	fmt.Println("Watching for launches, Ctrl-C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-ch:
			if rec, ok := ev.(*events.LaunchRecorded); ok {
				fmt.Printf("%s  launch recorded: startup=%d asset=%d\n",
					ev.Timestamp().Format(time.DateTime), rec.StartupID(), rec.AssetID())
			}
		}
	}
}

func clearLaunches() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cache.Clear(); err != nil {
		return err
	}
	fmt.Println("Launch history cleared")
	return nil
}

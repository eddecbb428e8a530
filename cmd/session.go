package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"startex/logx"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the wallet session",
}

var sessionConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the configured wallet provider",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sessionConnect(); err != nil {
			logx.Error("SESSION CLI", err)
		}
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sessionStatus(); err != nil {
			logx.Error("SESSION CLI", err)
		}
	},
}

var sessionDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the wallet session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sessionDisconnect(); err != nil {
			logx.Error("SESSION CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionConnectCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionDisconnectCmd)
}

func sessionConnect() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	address, err := a.session.Connect(ctx, globalConfig.Provider)
	if err != nil {
		return err
	}
	fmt.Printf("Connected: %s (%s)\n", address, globalConfig.Provider)
	return nil
}

func sessionStatus() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Status:   %s\n", a.session.Status())
	if addr := a.session.Address(); addr != "" {
		fmt.Printf("Address:  %s\n", addr)
		fmt.Printf("Provider: %s\n", a.session.ProviderID())
	}
	fmt.Printf("Network:  %s\n", a.network.Name)
	return nil
}

func sessionDisconnect() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.Disconnect(ctx)
	fmt.Println("Disconnected")
	return nil
}

package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var requestFlag string
	var broadcastFlag string
	var timeoutFlag time.Duration

	ctx := newCommandContext(&requestFlag, &broadcastFlag, &timeoutFlag)

	rootCmd := &cobra.Command{
		Use:           "pitopctl",
		Short:         "Control and inspect a running pitopd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&requestFlag, "request-addr", "", "Request endpoint of the daemon (default tcp://127.0.0.1:3782)")
	rootCmd.PersistentFlags().StringVar(&broadcastFlag, "broadcast-addr", "", "Broadcast endpoint of the daemon (default tcp://127.0.0.1:3781)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 2*time.Second, "Per-request timeout")

	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newDeviceCommand(ctx))
	rootCmd.AddCommand(newBrightnessCommand(ctx))
	rootCmd.AddCommand(newScreenCommand(ctx))
	rootCmd.AddCommand(newBatteryCommand(ctx))
	rootCmd.AddCommand(newPeripheralCommand(ctx))
	rootCmd.AddCommand(newMonitorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

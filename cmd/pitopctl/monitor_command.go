package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
	"pitopd/internal/logging"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Stream daemon broadcasts until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			addr := ctx.broadcastAddr()
			sub, err := client.Subscribe(sigCtx, addr, logging.NewNop())
			if err != nil {
				return fmt.Errorf("subscribe to %s: %w", addr, err)
			}
			defer sub.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "listening on %s\n", addr)
			for {
				select {
				case msg, ok := <-sub.Messages():
					if !ok {
						return nil
					}
					fmt.Fprintf(out, "%s %s\n", time.Now().Format("15:04:05"), msg.Describe())
				case <-sigCtx.Done():
					return nil
				}
			}
		},
	}
}

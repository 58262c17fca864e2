package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the daemon is responding",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				if err := req.Ping(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "pong")
				return nil
			})
		},
	}
}

func newDeviceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Print the identifier of the attached device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				id, err := req.DeviceID()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

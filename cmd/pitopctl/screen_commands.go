package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
)

func newScreenCommand(ctx *commandContext) *cobra.Command {
	screenCmd := &cobra.Command{
		Use:   "screen",
		Short: "Control screen blanking",
	}

	screenCmd.AddCommand(&cobra.Command{
		Use:   "blank",
		Short: "Turn the display off",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				return req.BlankScreen()
			})
		},
	})

	screenCmd.AddCommand(&cobra.Command{
		Use:   "unblank",
		Short: "Turn the display back on",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				return req.UnblankScreen()
			})
		},
	})

	timeoutCmd := &cobra.Command{
		Use:   "timeout",
		Short: "Print the idle blanking timeout in seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				seconds, err := req.ScreenBlankingTimeout()
				if err != nil {
					return err
				}
				if seconds == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "never")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%ds\n", seconds)
				return nil
			})
		},
	}
	timeoutCmd.AddCommand(&cobra.Command{
		Use:   "set <seconds>",
		Short: "Set the idle blanking timeout, zero to disable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("timeout must be an integer number of seconds: %q", args[0])
			}
			return ctx.withRequester(func(req *client.Requester) error {
				return req.SetScreenBlankingTimeout(seconds)
			})
		},
	})
	screenCmd.AddCommand(timeoutCmd)

	return screenCmd
}

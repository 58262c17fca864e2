package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
)

func newPeripheralCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "peripheral <id>",
		Short: "Report whether a peripheral is enabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peripheralID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("peripheral id must be an integer: %q", args[0])
			}
			return ctx.withRequester(func(req *client.Requester) error {
				enabled, err := req.PeripheralEnabled(peripheralID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "peripheral %d enabled: %s\n", peripheralID, yesNo(enabled))
				return nil
			})
		},
	}
}

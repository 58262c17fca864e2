package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
)

func newBrightnessCommand(ctx *commandContext) *cobra.Command {
	brightnessCmd := &cobra.Command{
		Use:   "brightness",
		Short: "Inspect and adjust the screen backlight",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				level, err := req.Brightness()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), level)
				return nil
			})
		},
	}

	brightnessCmd.AddCommand(&cobra.Command{
		Use:   "set <level>",
		Short: "Set an absolute backlight level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("brightness level must be an integer: %q", args[0])
			}
			return ctx.withRequester(func(req *client.Requester) error {
				return req.SetBrightness(level)
			})
		},
	})

	brightnessCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Raise the backlight by one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				return req.IncrementBrightness()
			})
		},
	})

	brightnessCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Lower the backlight by one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				return req.DecrementBrightness()
			})
		},
	})

	return brightnessCmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitopd/internal/client"
)

func newBatteryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "battery",
		Short: "Show the current battery state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRequester(func(req *client.Requester) error {
				state, err := req.BatteryState()
				if err != nil {
					return err
				}

				remaining := "-"
				if state.TimeRemaining > 0 {
					remaining = fmt.Sprintf("%dm", state.TimeRemaining)
				}
				rows := [][]string{{
					chargingLabel(state.Charging),
					strconv.Itoa(state.Capacity) + "%",
					remaining,
					strconv.Itoa(state.Wattage) + "W",
				}}

				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"State", "Capacity", "Remaining", "Power"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func chargingLabel(charging int) string {
	switch charging {
	case 0:
		return "discharging"
	case 1:
		return "charging"
	case 2:
		return "full"
	default:
		return strconv.Itoa(charging)
	}
}

package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"clubsite/internal/adapters/pacetable"
	"clubsite/internal/application/projections"
	"clubsite/internal/domain/pace"
)

// runShowPaces prints the table for input, "Invalid time." for bad input, and nothing for empty input.
func runShowPaces(cmd *cobra.Command, input string, asHTML bool) error {
	out := cmd.OutOrStdout()
	res := projections.QueryShowPaces(input)
	switch res.State {
	case projections.StateEmpty:
		return nil
	case projections.StateInvalid:
		fmt.Fprintln(out, res.Message)
		return errInvalidTime
	}
	if asHTML {
		fmt.Fprintln(out, pacetable.HTML(res.Table))
		return nil
	}
	fmt.Fprintln(out, pacetable.Terminal(res.Table))
	return nil
}

func newDistancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distances",
		Short: "List the distances and pace divisors used by the table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Distance", "Divisor of mile race pace")
			t.Row("5K", "input")
			for _, d := range pace.Distances() {
				t.Row(d.Label, strconv.FormatFloat(d.Divisor, 'f', -1, 64))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

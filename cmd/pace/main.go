package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// errInvalidTime is returned after "Invalid time." has been printed.
var errInvalidTime = errors.New("invalid time")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidTime) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asHTML bool

	rootCmd := &cobra.Command{
		Use:   "pace <5k-time>",
		Short: "Training paces from a 5K race time",
		Long: `pace converts a 5K race time (MM:SS) into target paces for track,
tempo and long-run sessions, using the same table as the club website.`,
		Example:       "  pace 15:32\n  pace --html 22:10",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowPaces(cmd, args[0], asHTML)
		},
	}
	rootCmd.Flags().BoolVar(&asHTML, "html", false, "print an HTML <table> fragment instead of a terminal table")

	rootCmd.AddCommand(newDistancesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pace %s\n", version)
		},
	}
}

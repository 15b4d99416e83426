package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for daypick
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daypick",
		Short: "Curate timestamped photos into a bounded photo diary",
		Long: `Daypick selects a quota-limited subset of a large photo collection,
one plan per calendar day: picks are spread evenly across the day, capped
per hour, limited per category, and spaced by a minimum interval, with
larger files preferred as a quality proxy.

The selection is written as a JSON report; with --execute the selected
files are copied into a year/month directory layout.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewPickCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}

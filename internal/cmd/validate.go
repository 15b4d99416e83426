package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/daypick/internal/datestamp"
	"github.com/harrison/daypick/internal/models"
	"github.com/harrison/daypick/internal/planner"
	"github.com/harrison/daypick/internal/scanner"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <list-file>",
		Short: "Validate a candidate list file and preview per-day quotas",
		Long: `Validate a .json or .txt candidate list file without selecting or
copying anything. Prints the per-day candidate counts and the quota each
day would receive. Malformed list files fail validation.

Examples:
  daypick validate picked.json
  daypick validate paths.txt --day-cap 30`,
		Args: cobra.ExactArgs(1),
		RunE: validateCommand,
	}

	cmd.Flags().Int("day-cap", 0, "Maximum items kept per day (0 = default)")

	return cmd
}

// validateCommand implements the validate command logic
func validateCommand(cmd *cobra.Command, args []string) error {
	entries, err := scanner.LoadList(args[0])
	if err != nil {
		return err
	}

	dayCap, _ := cmd.Flags().GetInt("day-cap")
	out := cmd.OutOrStdout()

	var items []models.MediaItem
	noDate := 0
	for _, entry := range entries {
		stamp, ok := datestamp.Extract(entry.Name)
		if !ok {
			noDate++
			continue
		}
		items = append(items, models.MediaItem{
			Path:   entry.Path,
			Name:   entry.Name,
			Size:   entry.Size,
			Taken:  stamp.Taken,
			DayKey: stamp.DayKey,
		})
	}

	buckets := models.GroupByDay(items)
	fmt.Fprintf(out, "List file: %s\n", args[0])
	fmt.Fprintf(out, "Entries: %d (%d without a parseable date)\n", len(entries), noDate)
	fmt.Fprintf(out, "Days: %d\n", len(buckets))

	totalTarget := 0
	for _, bucket := range buckets {
		plan := planner.Plan(bucket.DayKey, len(bucket.Items), dayCap)
		totalTarget += plan.TargetCount
		fmt.Fprintf(out, "  %s: %d candidates, target %d, spacing %s\n",
			plan.DayKey, plan.TotalCount, plan.TargetCount, plan.MinInterval)
	}
	fmt.Fprintf(out, "Total target: %d\n", totalTarget)
	return nil
}

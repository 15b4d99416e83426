package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/daypick/internal/config"
	"github.com/harrison/daypick/internal/executor"
	"github.com/harrison/daypick/internal/filelock"
	"github.com/harrison/daypick/internal/logger"
	"github.com/harrison/daypick/internal/scanner"
)

// NewPickCommand creates the pick command
func NewPickCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick [directory]",
		Short: "Select a photo-diary subset and write the report",
		Long: `Select a quota-limited subset of the media files under a directory
(or from a pre-existing list file) and write the selection report as
picked_<timestamp>.json in the output directory.

By default nothing is copied (dry run). With --execute the selected files
are copied into <output>/YYYY/YYYY-MM/ and a report_<timestamp>.json maps
each month to the copied source paths. Existing destination files are
skipped, never overwritten.

Configuration is loaded from .daypick/config.yaml if present, then
DAYPICK_* environment variables, then CLI flags, in ascending precedence.

Examples:
  daypick pick ~/Photos                    # Dry run: report only
  daypick pick ~/Photos --execute          # Copy the selection
  daypick pick --list picked.json          # Use a pre-built candidate list
  daypick pick ~/Photos --day-cap 30       # Tighter per-day quota
  daypick pick ~/Photos --exif-fallback    # Read EXIF when filenames lack dates`,
		Args: cobra.MaximumNArgs(1),
		RunE: pickCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .daypick/config.yaml)")
	cmd.Flags().String("list", "", "Read candidates from a .json or .txt list file instead of walking a directory")
	cmd.Flags().Int("day-cap", 0, "Maximum items kept per day (0 = use config)")
	cmd.Flags().String("output", "", "Output directory for reports and copies")
	cmd.Flags().Int("max-concurrency", 0, "Maximum parallel workers (0 = use config)")
	cmd.Flags().Int64("min-size", 0, "Minimum file size in bytes for scanned candidates (0 = use config)")
	cmd.Flags().Bool("execute", false, "Copy the selected files (default is dry run)")
	cmd.Flags().Bool("exif-fallback", false, "Fall back to EXIF metadata when a filename has no timestamp")
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt before copying")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")

	return cmd
}

// pickCommand implements the pick command logic
func pickCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadPickConfig(cmd)
	if err != nil {
		return err
	}

	listPath, _ := cmd.Flags().GetString("list")
	if listPath == "" && len(args) == 0 {
		return fmt.Errorf("either a directory argument or --list is required")
	}
	if listPath != "" && len(args) > 0 {
		return fmt.Errorf("cannot use both a directory argument and --list")
	}

	log := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)
	start := time.Now()

	// Gather candidates: directory walk or pre-existing list.
	var entries []scanner.Entry
	var root string
	if listPath != "" {
		entries, err = scanner.LoadList(listPath)
		if err != nil {
			return err
		}
	} else {
		root, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
		result, err := scanner.Scan(root, scanner.Options{MinSize: cfg.MinSize})
		if err != nil {
			return err
		}
		for _, scanErr := range result.Errors {
			log.LogWarn(scanErr.Error())
		}
		entries = result.Entries
	}

	if len(entries) == 0 {
		log.LogInfo("No candidate files found, nothing to do")
		return nil
	}

	pipeline := &executor.Pipeline{
		RunID:          uuid.NewString(),
		Root:           root,
		DayCap:         cfg.DayCap,
		MaxConcurrency: cfg.MaxConcurrency,
		ExifFallback:   cfg.ExifFallback,
		Logger:         log,
	}
	result, err := pipeline.Run(cmd.Context(), entries)
	if err != nil {
		return err
	}

	doc := result.Document
	if doc.SelectedCount() == 0 {
		log.LogInfo("No items selected, nothing to do")
		return nil
	}

	timestamp := start.Format("20060102_150405")
	pickedPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("picked_%s.json", timestamp))
	if err := filelock.WriteJSON(pickedPath, doc); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.LogRunSummary(logger.RunSummary{
		Days:         len(result.Buckets),
		TotalFiles:   doc.TotalCount(),
		Selected:     doc.SelectedCount(),
		NoDate:       result.NoDateCount,
		ExcludedDirs: len(result.ExcludedDirs),
		Duration:     time.Since(start),
	})
	log.LogInfo(fmt.Sprintf("Report written to %s", pickedPath))

	if cfg.DryRun {
		log.LogInfo(fmt.Sprintf("Dry run: %d files would be copied to %s (use --execute to copy)", len(result.CopyPlan), cfg.OutputDir))
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := confirmCopy(len(result.CopyPlan), cfg.OutputDir)
		if err != nil {
			return err
		}
		if !ok {
			log.LogInfo("Copy aborted")
			return nil
		}
	}

	copier := &executor.CopyExecutor{
		OutDir:   cfg.OutputDir,
		Logger:   log,
		Progress: log.LogCopyProgress,
	}
	copyResult, err := copier.Execute(cmd.Context(), result.CopyPlan)
	if err != nil {
		return err
	}
	reportPath, err := copier.WriteReport(copyResult, timestamp)
	if err != nil {
		return err
	}

	log.LogInfo(fmt.Sprintf("Copied %d files (%d already existed) to %s", copyResult.CopiedCount, copyResult.SkippedExisting, cfg.OutputDir))
	log.LogInfo(fmt.Sprintf("Copy report written to %s", reportPath))
	if len(copyResult.Failed) > 0 {
		log.LogWarn(fmt.Sprintf("%d files failed to copy", len(copyResult.Failed)))
	}
	return nil
}

// loadPickConfig loads the config file and merges flags over it.
func loadPickConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Build flag pointers for merge (only explicitly set values)
	var dayCapPtr *int
	if cmd.Flags().Changed("day-cap") {
		v, _ := cmd.Flags().GetInt("day-cap")
		dayCapPtr = &v
	}
	var outputPtr *string
	if cmd.Flags().Changed("output") {
		v, _ := cmd.Flags().GetString("output")
		outputPtr = &v
	}
	var concurrencyPtr *int
	if cmd.Flags().Changed("max-concurrency") {
		v, _ := cmd.Flags().GetInt("max-concurrency")
		concurrencyPtr = &v
	}
	var minSizePtr *int64
	if cmd.Flags().Changed("min-size") {
		v, _ := cmd.Flags().GetInt64("min-size")
		minSizePtr = &v
	}
	var dryRunPtr *bool
	if cmd.Flags().Changed("execute") {
		execute, _ := cmd.Flags().GetBool("execute")
		dryRun := !execute
		dryRunPtr = &dryRun
	}
	var exifPtr *bool
	if cmd.Flags().Changed("exif-fallback") {
		v, _ := cmd.Flags().GetBool("exif-fallback")
		exifPtr = &v
	}
	cfg.MergeWithFlags(dayCapPtr, outputPtr, concurrencyPtr, minSizePtr, dryRunPtr, exifPtr)

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// confirmCopy prompts before copying. Without a TTY there is nobody to ask,
// so the caller must pass --yes explicitly.
func confirmCopy(count int, outDir string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("refusing to copy without confirmation on non-interactive input (use --yes)")
	}

	fmt.Printf("Copy %d files to %s? [y/N] ", count, outDir)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

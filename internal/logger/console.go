// Package logger provides the leveled, thread-safe console logger used by
// daypick runs. All output is prefixed with [HH:MM:SS] timestamps; color is
// enabled automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/daypick/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread
// safety. It supports log level filtering to control message verbosity.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded. Valid levels:
// trace, debug, info, warn, error (case-insensitive); empty or invalid
// defaults to "info". Color output is enabled when the writer is os.Stdout
// or os.Stderr with TTY support.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// color.NoColor already accounts for NO_COLOR and non-TTY output.
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
// Format: "[HH:MM:SS] [LEVEL] <message>"
func (cl *ConsoleLogger) logWithLevel(level, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorizeLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}
	cl.writer.Write([]byte(formatted))
}

func colorizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogDayResult logs the outcome of one day's selection at DEBUG level.
// Format: "[HH:MM:SS] 2024-06-12: picked 40/120 (target 40)"
func (cl *ConsoleLogger) LogDayResult(plan models.SelectionPlan, picked int) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var message string
	if cl.colorOutput {
		dayKey := color.New(color.Bold).Sprint(plan.DayKey)
		message = fmt.Sprintf("[%s] %s: picked %d/%d (target %d)\n", ts, dayKey, picked, plan.TotalCount, plan.TargetCount)
	} else {
		message = fmt.Sprintf("[%s] %s: picked %d/%d (target %d)\n", ts, plan.DayKey, picked, plan.TotalCount, plan.TargetCount)
	}
	cl.writer.Write([]byte(message))
}

// RunSummary holds the totals printed at the end of a run.
type RunSummary struct {
	Days         int
	TotalFiles   int
	Selected     int
	NoDate       int
	ExcludedDirs int
	Duration     time.Duration
}

// LogRunSummary logs the end-of-run summary at INFO level.
func (cl *ConsoleLogger) LogRunSummary(s RunSummary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var output string
	if cl.colorOutput {
		header := color.New(color.Bold).Sprint("=== Selection Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] Days: %d\n", ts, s.Days)
		output += fmt.Sprintf("[%s] Candidates: %d\n", ts, s.TotalFiles)
		output += fmt.Sprintf("[%s] %s\n", ts, color.New(color.FgGreen).Sprintf("Selected: %d", s.Selected))
		if s.NoDate > 0 {
			output += fmt.Sprintf("[%s] %s\n", ts, color.New(color.FgYellow).Sprintf("No date: %d", s.NoDate))
		} else {
			output += fmt.Sprintf("[%s] No date: %d\n", ts, s.NoDate)
		}
		output += fmt.Sprintf("[%s] Excluded dirs: %d\n", ts, s.ExcludedDirs)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(s.Duration))
	} else {
		output = fmt.Sprintf("[%s] === Selection Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Days: %d\n", ts, s.Days)
		output += fmt.Sprintf("[%s] Candidates: %d\n", ts, s.TotalFiles)
		output += fmt.Sprintf("[%s] Selected: %d\n", ts, s.Selected)
		output += fmt.Sprintf("[%s] No date: %d\n", ts, s.NoDate)
		output += fmt.Sprintf("[%s] Excluded dirs: %d\n", ts, s.ExcludedDirs)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(s.Duration))
	}
	cl.writer.Write([]byte(output))
}

// LogCopyProgress logs copy progress with a rendered progress bar at INFO
// level. Format: "[HH:MM:SS] Copying: [====      ] 4/10 (40%)"
func (cl *ConsoleLogger) LogCopyProgress(done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	cl.writer.Write([]byte(fmt.Sprintf("[%s] Copying: %s\n", timestamp(), pb.Render())))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a compact human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, remainder/time.Second)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, remainder/time.Second)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards all log messages. Useful for tests and disabled logging.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {}

// LogDayResult is a no-op implementation.
func (n *NoOpLogger) LogDayResult(plan models.SelectionPlan, picked int) {}

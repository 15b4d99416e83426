package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/daypick/internal/filelock"
	"github.com/harrison/daypick/internal/models"
)

// CopyResult is the outcome of executing a copy plan. Copied maps each
// destination month to the source paths copied into it and is persisted as
// report_<timestamp>.json.
type CopyResult struct {
	Copied          map[string][]string `json:"copied"`
	CopiedCount     int                 `json:"copied_count"`
	SkippedExisting int                 `json:"skipped_existing"`
	Failed          []string            `json:"failed,omitempty"`
}

// CopyExecutor copies selected files into OutDir/YYYY/YYYY-MM/. It holds an
// advisory run lock on the output directory for the duration, so concurrent
// invocations cannot interleave.
type CopyExecutor struct {
	OutDir   string
	Logger   Logger
	Progress func(done, total int) // optional progress callback
}

// Execute runs the copy plan. Destinations that already exist are skipped and
// counted, not overwritten. Individual copy failures are recorded and the
// plan continues; only lock acquisition and cancellation abort the run.
func (ce *CopyExecutor) Execute(ctx context.Context, plan []models.CopyInstruction) (*CopyResult, error) {
	if err := os.MkdirAll(ce.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := filelock.NewRunLock(filepath.Join(ce.OutDir, ".daypick.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("another daypick run is writing to %s", ce.OutDir)
	}
	defer lock.Unlock()

	result := &CopyResult{Copied: make(map[string][]string)}
	for i, instr := range plan {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		destDir := filepath.Join(ce.OutDir, instr.DestYear, instr.DestMonth)
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return result, fmt.Errorf("failed to create %s: %w", destDir, err)
		}

		destPath := filepath.Join(destDir, filepath.Base(instr.Source))
		if _, err := os.Stat(destPath); err == nil {
			result.SkippedExisting++
			continue
		}

		if err := copyFile(instr.Source, destPath); err != nil {
			result.Failed = append(result.Failed, instr.Source)
			if ce.Logger != nil {
				ce.Logger.LogWarn(fmt.Sprintf("copy failed for %s: %v", instr.Source, err))
			}
			continue
		}

		result.Copied[instr.DestMonth] = append(result.Copied[instr.DestMonth], instr.Source)
		result.CopiedCount++
		if ce.Progress != nil {
			ce.Progress(i+1, len(plan))
		}
	}
	return result, nil
}

// WriteReport persists the copy result as report_<timestamp>.json in the
// output directory and returns the path written.
func (ce *CopyExecutor) WriteReport(result *CopyResult, timestamp string) (string, error) {
	path := filepath.Join(ce.OutDir, fmt.Sprintf("report_%s.json", timestamp))
	if err := filelock.WriteJSON(path, result); err != nil {
		return "", err
	}
	return path, nil
}

// copyFile copies src to dest via a temp file and rename, so an interrupted
// copy never leaves a partial file at the destination.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

package util

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// StartOutputCleanupJob deletes generated certificates and stored uploads older than maxAge.
// It runs once at startup and then every interval until the process exits.
func StartOutputCleanupJob(dirs []string, maxAge time.Duration, interval time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in output cleanup job", "panic", r)
			}
		}()

		slog.Info("Output cleanup job: Initial run starting")
		CleanupOldOutputs(dirs, maxAge, time.Now())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			slog.Info("Output cleanup job: Scheduled run starting")
			CleanupOldOutputs(dirs, maxAge, time.Now())
		}
	}()

	slog.Info("Output cleanup job started successfully", "maxAge", maxAge.String(), "interval", interval.String())
}

// CleanupOldOutputs removes regular files directly inside dirs last modified before now-maxAge.
// It returns how many files were deleted.
func CleanupOldOutputs(dirs []string, maxAge time.Duration, now time.Time) int {
	startTime := time.Now()
	cutoff := now.Add(-maxAge)
	deleted, failed := 0, 0

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			slog.Warn("CleanupOldOutputs: Failed to list directory", "dir", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("CleanupOldOutputs: Failed to delete file", "path", path, "error", err)
				failed++
				continue
			}
			deleted++
		}
	}

	if deleted > 0 || failed > 0 {
		slog.Info("CleanupOldOutputs: Completed", "deleted", deleted, "failed", failed, "duration", time.Since(startTime))
	}
	return deleted
}

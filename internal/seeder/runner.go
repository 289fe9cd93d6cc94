package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/squadrate/internal/domain/types"
	"github.com/okian/squadrate/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes a complete seeding run and returns its statistics.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("seeder")

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("date", cfg.Date),
		logger.Int("submissions", cfg.Submissions),
		logger.Int("workers", cfg.Workers),
	)

	roster := DefaultRoster()
	if cfg.RosterFile != "" {
		r, err := LoadRoster(cfg.RosterFile)
		if err != nil {
			return stats, err
		}
		roster = r
	}

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Snapshot the date before writing
	before, err := client.Summary(ctx, cfg.Date)
	if err != nil {
		return stats, fmt.Errorf("initial summary failed: %w", err)
	}

	// Step 3: Generate
	subs := Generate(cfg.Submissions, cfg.Date, roster)
	stats.Generated = len(subs)

	// Step 4: Submit concurrently
	if err := submitAll(ctx, client, cfg, subs, stats); err != nil {
		return stats, fmt.Errorf("submission failed: %w", err)
	}

	// Step 5: Verify
	after, err := client.Summary(ctx, cfg.Date)
	if err != nil {
		return stats, fmt.Errorf("final summary failed: %w", err)
	}
	if err := Verify(before, after, subs); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	// Step 6: Save submissions
	if cfg.OutputFile != "" {
		if err := saveSubmissions(cfg.OutputFile, subs); err != nil {
			log.Warn(ctx, "failed to save submissions", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("failed", stats.Failed),
		logger.Int("rowsSent", stats.RowsSent),
		logger.Int("totalSubmissions", after.TotalSubmissions),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

func submitAll(ctx context.Context, client *Client, cfg *Config, subs []types.Submission, stats *Stats) error {
	var submitted, failed, rows atomic.Int64
	log := logger.Named("seeder")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			n, err := client.Submit(gctx, sub)
			if err != nil {
				failed.Add(1)
				return err
			}
			submitted.Add(1)
			rows.Add(int64(n))
			if cfg.Verbose {
				log.Info(gctx, "submitted",
					logger.String("submissionId", sub.SelfRow.SubmissionID),
					logger.String("reviewer", sub.SelfRow.SelfPlayer),
					logger.Int("rows", n),
				)
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Failed = int(failed.Load())
	stats.RowsSent = int(rows.Load())
	return err
}

func saveSubmissions(filename string, subs []types.Submission) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

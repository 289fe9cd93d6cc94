// Command seed-ratings posts synthetic weekly ratings to a running service
// and verifies the per-date summary accounts for them.
package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/squadrate/internal/seeder"
	"github.com/okian/squadrate/pkg/logger"
)

const (
	defaultSubmissions = 14
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &seeder.Config{}
	var logFormat string

	cmd := &cobra.Command{
		Use:   "seed-ratings",
		Short: "Post synthetic form responses and verify the summary",
		Example: `  seed-ratings
  seed-ratings --date 2024-05-01 --submissions 40 --workers 8
  seed-ratings --roster roster.yaml --output subs.json --verbose`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFormat(logFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if cfg.Verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultRunTimeout)
			defer cancel()

			_, err := seeder.Run(ctx, cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.StringVar(&cfg.Date, "date", time.Now().Format(time.DateOnly), "match date of the generated responses")
	f.IntVar(&cfg.Submissions, "submissions", defaultSubmissions, "number of form responses to post")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "number of concurrent submitters")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.StringVar(&cfg.RosterFile, "roster", "", "YAML roster with players and notes")
	f.StringVar(&cfg.OutputFile, "output", "", "write generated submissions to this JSON file")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log every submission")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	return cmd
}

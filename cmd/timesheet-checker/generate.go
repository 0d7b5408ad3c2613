package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-checker/internal/config"
	"github.com/username/timesheet-checker/internal/loader"
	"github.com/username/timesheet-checker/internal/planner"
	"github.com/username/timesheet-checker/pkg/random"
	"github.com/username/timesheet-checker/pkg/worktime"
	"go.uber.org/zap"
)

type generateOptions struct {
	year      int
	month     int
	target    string
	days      int
	start     string
	action    string
	randomize float64
	seed      int64
	format    string
	output    string
}

func generateCmd() *cobra.Command {
	var opts generateOptions
	now := time.Now()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a month document that passes all checks",
		Long:  "Spread a target working time over randomly chosen working days of a month, skipping weekends and public holidays, and write the month document.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if opts.output == "" {
				return runGenerate(cmd.OutOrStdout(), cfg, opts)
			}
			return writeFile(opts.output, func(w io.Writer) error {
				return runGenerate(w, cfg, opts)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.year, "year", "y", now.Year(), "Year")
	cmd.Flags().IntVarP(&opts.month, "month", "m", int(now.Month()), "Month (1-12)")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Working time to distribute, e.g. 40:00")
	cmd.Flags().IntVar(&opts.days, "days", 0, "Number of working days to use (0: one per four hours)")
	cmd.Flags().StringVar(&opts.start, "start", "09:00", "Daily start time")
	cmd.Flags().StringVar(&opts.action, "action", "Tätigkeit", "Action text for every entry")
	cmd.Flags().Float64Var(&opts.randomize, "randomize", 20, "Per-day variance in percent")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed (0: current time)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runGenerate(w io.Writer, cfg *config.Config, opts generateOptions) error {
	target, err := worktime.ParseTimeSpan(opts.target)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	start, err := worktime.ParseClockTime(opts.start)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	format := loader.Format(opts.format)
	if format != loader.FormatJSON && format != loader.FormatYAML {
		return fmt.Errorf("unsupported output format: %q", opts.format)
	}

	cal, err := buildCalendar(cfg)
	if err != nil {
		return err
	}

	rng := random.NewFromTime()
	if opts.seed != 0 {
		rng = random.New(opts.seed)
	}

	doc, err := planner.New(cal, rng, logger).Plan(planner.Options{
		Year:                 opts.year,
		Month:                time.Month(opts.month),
		Target:               target,
		Action:               opts.action,
		Days:                 opts.days,
		Start:                start,
		RandomizationPercent: opts.randomize,
	})
	if err != nil {
		return err
	}

	if err := loader.Encode(w, format, doc); err != nil {
		return fmt.Errorf("failed to write month document: %w", err)
	}

	logger.Info("Month document generated",
		zap.Int("entries", len(doc.Entries)),
		zap.Stringer("target", target))
	return nil
}

// writeFile creates path, runs write on it and reports a failed close
func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

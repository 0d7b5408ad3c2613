package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-checker/internal/checker"
	"github.com/username/timesheet-checker/internal/config"
	"github.com/username/timesheet-checker/internal/loader"
	"github.com/username/timesheet-checker/internal/report"
	"go.uber.org/zap"
)

// errInvalidTimesheet signals a completed run with violations
var errInvalidTimesheet = errors.New("timesheet is invalid")

type checkOptions struct {
	globalPath string
	monthPath  string
	format     string
	language   string
	state      string
}

func checkCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a monthly timesheet",
		Long:  "Load the global and month documents, run all compliance checks and print every violation at once. Exits with status 1 if the timesheet is invalid.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runCheck(cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.globalPath, "global", "g", "", "Global document (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.monthPath, "month", "m", "", "Month document (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text or json (default from config)")
	cmd.Flags().StringVarP(&opts.language, "lang", "l", "", "Message language: de or en (default from config)")
	cmd.Flags().StringVar(&opts.state, "state", "", "German state code for holidays, e.g. BW (default from config)")
	_ = cmd.MarkFlagRequired("global")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runCheck(w io.Writer, cfg *config.Config, opts checkOptions) error {
	if opts.state != "" {
		cfg.Calendar.State = opts.state
	}
	format := cfg.Report.Format
	if opts.format != "" {
		format = opts.format
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported output format: %q", format)
	}

	language := cfg.Report.Language
	if opts.language != "" {
		language = opts.language
	}
	lang, err := report.ParseLanguage(language)
	if err != nil {
		return err
	}

	sheet, err := loader.New(logger).LoadFiles(opts.globalPath, opts.monthPath)
	if err != nil {
		return err
	}

	cal, err := buildCalendar(cfg)
	if err != nil {
		return err
	}

	result, err := checker.New(cal, logger).Check(sheet)
	if err != nil {
		return fmt.Errorf("check aborted: %w", err)
	}

	reporter := report.New(lang)
	if format == "json" {
		err = reporter.WriteJSON(w, result)
	} else {
		err = reporter.WriteText(w, sheet, result)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Check completed",
		zap.String("global_file", opts.globalPath),
		zap.String("month_file", opts.monthPath),
		zap.Stringer("verdict", result.Verdict),
		zap.Int("violations", len(result.Errors)))

	if result.Verdict == checker.Invalid {
		return errInvalidTimesheet
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-checker/internal/calendar"
	"github.com/username/timesheet-checker/internal/config"
	"github.com/username/timesheet-checker/pkg/dateutil"
	"go.uber.org/zap"
)

func holidaysCmd() *cobra.Command {
	var year int
	var state string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if state != "" {
				cfg.Calendar.State = state
			}
			return runHolidays(cmd.OutOrStdout(), cfg, year)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", time.Now().Year(), "Year to list")
	cmd.Flags().StringVar(&state, "state", "", "German state code, e.g. BW (default from config)")

	return cmd
}

func runHolidays(w io.Writer, cfg *config.Config, year int) error {
	cal, err := buildCalendar(cfg)
	if err != nil {
		return err
	}

	holidays, err := cal.Holidays(year)
	if err != nil {
		return fmt.Errorf("failed to get holidays for %d: %w", year, err)
	}

	for _, h := range holidays {
		if _, err := fmt.Fprintf(w, "%s  %-10s %s\n", dateutil.FormatGerman(h.Date), h.Date.Weekday(), h.Name); err != nil {
			return err
		}
	}
	return nil
}

// buildCalendar wires the configured holiday backend
func buildCalendar(cfg *config.Config) (calendar.Calendar, error) {
	switch cfg.Calendar.Type {
	case config.CalendarFeiertage:
		logger.Info("Using feiertage-api.de calendar API",
			zap.String("state", cfg.Calendar.State))
		primary := calendar.NewFeiertageCalendar(
			cfg.Calendar.APIURL,
			cfg.Calendar.State,
			cfg.Calendar.GetCacheTTL(),
			logger,
		)

		var fallback calendar.Calendar
		if cfg.Calendar.FallbackFile != "" {
			fallback = calendar.NewFileCalendar(cfg.Calendar.FallbackFile, logger)
		} else {
			german, err := calendar.NewGermanCalendar(cfg.Calendar.State)
			if err != nil {
				return nil, err
			}
			fallback = german
		}

		composite := calendar.NewCompositeCalendar(logger, primary, fallback)
		if err := composite.LoadFiles(); err != nil {
			logger.Warn("Failed to load fallback calendar, continuing with API only",
				zap.Error(err))
		}
		return composite, nil

	case config.CalendarGerman:
		logger.Info("Using computed German holiday calendar",
			zap.String("state", cfg.Calendar.State))
		german, err := calendar.NewGermanCalendar(cfg.Calendar.State)
		if err != nil {
			return nil, err
		}
		return german, nil

	case config.CalendarFile:
		logger.Info("Using holiday file calendar",
			zap.String("file", cfg.Calendar.FallbackFile))
		fc := calendar.NewFileCalendar(cfg.Calendar.FallbackFile, logger)
		if err := fc.Load(); err != nil {
			return nil, err
		}
		return fc, nil

	default:
		return nil, fmt.Errorf("unknown calendar type: %s", cfg.Calendar.Type)
	}
}

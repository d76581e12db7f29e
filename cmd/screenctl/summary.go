package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"resume-screener/internal/analyses"
)

func newSummaryCmd(build appBuilder) *cobra.Command {
	var windowDays int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate screening statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if windowDays < 1 || windowDays > analyses.MaxWindowDays {
				return fmt.Errorf("--window-days must be between 1 and %d", analyses.MaxWindowDays)
			}
			app, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			res := app.Analytics.Summary(cmd.Context(), windowDays)
			if res.IsError() {
				return res.Err()
			}
			return writeJSON(cmd, res.Value())
		},
	}
	cmd.Flags().IntVar(&windowDays, "window-days", analyses.DefaultWindowDays, "comparison window in days")
	return cmd
}

func newTimeseriesCmd(build appBuilder) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "timeseries",
		Short: "Print daily analysis counts for the last N days as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 || days > analyses.MaxTimeseriesDays {
				return fmt.Errorf("--days must be between 1 and %d", analyses.MaxTimeseriesDays)
			}
			app, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			start, end, err := analyses.TimeseriesQuery{Days: &days}.Range(time.Now().UTC())
			if err != nil {
				return err
			}
			res := app.Analytics.Timeseries(cmd.Context(), start, end)
			if res.IsError() {
				return res.Err()
			}
			return writeJSON(cmd, timeseriesOutput{Items: res.Value()})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "number of days to include")
	return cmd
}

type timeseriesOutput struct {
	Items []analyses.DailyStat `json:"items"`
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

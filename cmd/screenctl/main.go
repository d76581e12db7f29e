// Command screenctl drives the résumé screening pipeline from the shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/telemetry"
)

type appBuilder func(ctx context.Context) (*bootstrap.App, error)

func buildFromEnv(ctx context.Context) (*bootstrap.App, error) {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogJSON, cfg.LogLevel); err != nil {
		return nil, err
	}
	return bootstrap.Build(ctx, cfg, bootstrap.Options{})
}

func newRootCmd(build appBuilder) *cobra.Command {
	root := &cobra.Command{
		Use:           "screenctl",
		Short:         "Ingest résumés and inspect screening analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newIngestCmd(build),
		newSummaryCmd(build),
		newTimeseriesCmd(build),
	)
	return root
}

func main() {
	_ = godotenv.Load()
	defer telemetry.Sync()

	if err := newRootCmd(buildFromEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-screener/internal/ingestion"
)

func newIngestCmd(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Run the ingestion pipeline for local résumé files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				body, err := os.ReadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s\terror: %v\n", path, err)
					continue
				}
				name := filepath.Base(path)
				in := ingestion.UploadInput{
					FileName: name,
					MimeType: ingestion.ResolveMime(name, ""),
					Body:     body,
				}
				if err := ingestion.CheckInput(in); err != nil {
					failed++
					fmt.Fprintf(out, "%s\terror: %v\n", path, err)
					continue
				}
				res := app.Ingestion.Upload(cmd.Context(), in)
				if res.IsError() {
					failed++
					fmt.Fprintf(out, "%s\terror: %v\n", path, res.Err())
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", path, res.Value().URL)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}

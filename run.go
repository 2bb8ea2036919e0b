package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"barber-prices/pipeline"
	"barber-prices/report"
	"barber-prices/sheets"

	"github.com/spf13/cobra"
)

var spreadsheetURL string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one refresh and print the price summary",
	Long: `Fetches every configured source once, prints the per-source outcome and the
price summary, and optionally overwrites a Google Sheets tab with the result.`,
	RunE: runOnce,
}

func init() {
	runCmd.Flags().StringVar(&spreadsheetURL, "spreadsheet", "", "Google Sheets URL or ID to export to (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := a.refresher.Refresh(ctx)
	if snap == nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	report.WriteConsole(cmd.OutOrStdout(), snap)
	if errors.Is(err, pipeline.ErrAllSourcesFailed) {
		return err
	}

	target := spreadsheetURL
	if target == "" {
		target = a.cfg.Sheets.SpreadsheetURL
	}
	if target == "" {
		return nil
	}

	id := sheets.ExtractSpreadsheetID(target)
	if id == "" {
		return fmt.Errorf("could not extract spreadsheet ID from %q", target)
	}
	writer, err := sheets.NewWriter(ctx, id, a.cfg.Sheets.SheetName, a.cfg.Sheets.CredentialsPath, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets writer: %w", err)
	}
	return writer.WriteSnapshot(ctx, snap)
}

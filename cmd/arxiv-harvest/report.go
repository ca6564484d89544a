// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild the summary report from saved metadata",
	Long: `Report reads papers_metadata.json from the output directory and writes
summary_report.txt again without querying arXiv.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	papers, err := report.LoadMetadata(filepath.Join(cfg.OutputDir, report.MetadataFile))
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		return fmt.Errorf("no papers in %s", report.MetadataFile)
	}

	summary := report.Summarize(papers, cfg.CategoryPrefix, time.Now())
	path := filepath.Join(cfg.OutputDir, report.SummaryFile)
	if err := report.WriteSummary(summary, cfg.ReportTitle, path); err != nil {
		return err
	}
	log.Info("saved summary report", logger.String("path", path), logger.Int("papers", len(papers)))
	report.RenderTable(summary, cmd.OutOrStdout())
	return nil
}

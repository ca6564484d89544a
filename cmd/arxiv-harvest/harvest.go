// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-harvest/internal/acquire"
	"github.com/pdiddy/arxiv-harvest/internal/harvest"
	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/internal/report"
	"github.com/pdiddy/arxiv-harvest/internal/search"
)

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log.Debug("configuration",
		logger.String("output_dir", cfg.OutputDir),
		logger.Int("terms", len(cfg.Terms)),
		logger.Int("max_papers", cfg.MaxPapers),
		logger.Duration("request_delay", cfg.RequestDelay),
		logger.String("user_agent", cfg.UserAgent))

	client := httputil.NewClient(cfg.HTTPConfig)
	downloader := acquire.NewDownloader(client, cfg, log.With(logger.String("stage", "download")))
	pipeline := harvest.New(cfg, search.NewArxivClient(client, cfg), downloader, log)

	res, err := pipeline.Run(cmd.Context(), cfg)
	if errors.Is(err, harvest.ErrNoPapers) {
		log.Error("no papers found", logger.Int("terms", res.Collect.Terms), logger.Int("failed_terms", res.Collect.FailedTerms))
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d unique papers (%d duplicates removed)\n", res.Found, res.Collect.Duplicates)
	if len(res.Papers) < res.Found {
		fmt.Fprintf(out, "Limited to %d papers\n", len(res.Papers))
	}
	report.RenderTable(res.Summary, out)
	if res.Downloaded {
		fmt.Fprintf(out, "\nDownload complete: %d successful, %d failed\n",
			res.Downloads.Successful(), res.Downloads.Failed)
	} else {
		fmt.Fprintln(out, "\nSkipping download as requested")
	}
	return nil
}

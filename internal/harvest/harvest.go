// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest runs the collection pipeline end to end:
// search → dedupe → truncate → persist metadata → summarize → download.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/arxiv-harvest/internal/acquire"
	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/internal/report"
	"github.com/pdiddy/arxiv-harvest/internal/search"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// ErrNoPapers is returned when no term produced any paper. Nothing is
// written to the output directory in that case.
var ErrNoPapers = errors.New("no papers found")

// Result describes a completed run.
type Result struct {
	Found        int
	Papers       []types.Paper
	Collect      search.CollectStats
	Summary      report.Summary
	MetadataPath string
	SummaryPath  string
	Downloads    acquire.BatchResult
	Downloaded   bool
}

// Pipeline holds the stages of a harvest run.
type Pipeline struct {
	Collector  *search.Collector
	Downloader *acquire.Downloader
	Log        logger.Logger
	Now        func() time.Time
}

// New wires a Pipeline from cfg. The HTTP client is shared by both stages.
func New(cfg types.HarvestConfig, searcher search.Searcher, downloader *acquire.Downloader, log logger.Logger) *Pipeline {
	return &Pipeline{
		Collector:  search.NewCollector(searcher, cfg, log.With(logger.String("stage", "search"))),
		Downloader: downloader,
		Log:        log,
		Now:        time.Now,
	}
}

// Run executes every stage in order. Search and download failures are
// tallied, not returned; the returned error is ErrNoPapers, a filesystem
// error, or the context's error.
func (p *Pipeline) Run(ctx context.Context, cfg types.HarvestConfig) (Result, error) {
	var res Result

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	p.Log.Info("searching arXiv", logger.Int("terms", len(cfg.Terms)))
	papers, stats, err := p.Collector.CollectAll(ctx, cfg.Terms)
	res.Collect = stats
	if err != nil {
		return res, fmt.Errorf("search interrupted: %w", err)
	}
	res.Found = len(papers)
	if len(papers) == 0 {
		return res, ErrNoPapers
	}
	p.Log.Info("found unique papers",
		logger.Int("papers", len(papers)),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed_terms", stats.FailedTerms))

	if cfg.MaxPapers > 0 && len(papers) > cfg.MaxPapers {
		papers = papers[:cfg.MaxPapers]
		p.Log.Info("limited papers", logger.Int("papers", len(papers)))
	}
	res.Papers = papers

	res.MetadataPath = filepath.Join(cfg.OutputDir, report.MetadataFile)
	if err := report.SaveMetadata(papers, res.MetadataPath); err != nil {
		return res, err
	}
	p.Log.Info("saved metadata", logger.Int("papers", len(papers)), logger.String("path", res.MetadataPath))

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	res.Summary = report.Summarize(papers, cfg.CategoryPrefix, now())
	res.SummaryPath = filepath.Join(cfg.OutputDir, report.SummaryFile)
	if err := report.WriteSummary(res.Summary, cfg.ReportTitle, res.SummaryPath); err != nil {
		return res, err
	}
	p.Log.Info("saved summary report", logger.String("path", res.SummaryPath))

	if cfg.SkipDownload {
		p.Log.Info("skipping download as requested")
		return res, nil
	}

	res.Downloads, err = p.Downloader.DownloadAll(ctx, papers, cfg.OutputDir)
	res.Downloaded = true
	if err != nil {
		return res, fmt.Errorf("download interrupted: %w", err)
	}
	return res, nil
}

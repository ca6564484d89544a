// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads paper PDFs into a flat output directory.
// A PDF already on disk is never fetched again, so an interrupted run can
// simply be restarted.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// chunkSize bounds the write buffer used while streaming a PDF to disk.
const chunkSize = 8192

// BatchResult holds the outcome of a DownloadAll run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	FailedIDs  []string
}

// Total returns the number of papers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// Successful counts downloaded and already-present papers.
func (r BatchResult) Successful() int {
	return r.Downloaded + r.Skipped
}

// HasFailures reports whether any paper failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Downloader fetches PDFs one at a time, waiting RequestDelay before every
// request that reaches the network.
type Downloader struct {
	Client *http.Client
	Config types.HarvestConfig
	Wait   httputil.WaitFunc
	Log    logger.Logger
}

// NewDownloader builds a Downloader from the harvest configuration.
func NewDownloader(client *http.Client, cfg types.HarvestConfig, log logger.Logger) *Downloader {
	return &Downloader{
		Client: client,
		Config: cfg,
		Wait:   httputil.Wait,
		Log:    log,
	}
}

// PDFPath returns the target path of paper inside dir.
func PDFPath(dir string, paper types.Paper) (string, error) {
	name := paper.Filename()
	if paper.ID == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid paper identifier %q", paper.ID)
	}
	return filepath.Join(dir, name), nil
}

// Download stores paper's PDF in dir. If a regular file already exists it
// returns skipped=true without waiting or touching the network. Any other
// entry at the target path is an error.
func (d *Downloader) Download(ctx context.Context, paper types.Paper, dir string) (skipped bool, err error) {
	destPath, err := PDFPath(dir, paper)
	if err != nil {
		return false, err
	}
	if info, err := os.Stat(destPath); err == nil {
		if !info.Mode().IsRegular() {
			return false, fmt.Errorf("%s exists and is not a regular file", destPath)
		}
		return true, nil
	}

	if err := d.wait(ctx); err != nil {
		return false, err
	}

	if err := d.fetch(ctx, paper.PDFURL, destPath); err != nil {
		return false, fmt.Errorf("downloading %s: %w", paper.ID, err)
	}
	return false, nil
}

// DownloadAll downloads papers in order. Individual failures are logged and
// tallied; only context cancellation stops the batch early.
func (d *Downloader) DownloadAll(ctx context.Context, papers []types.Paper, dir string) (BatchResult, error) {
	var result BatchResult
	d.Log.Info("downloading papers", logger.Int("papers", len(papers)), logger.String("dir", dir))

	for i, p := range papers {
		log := d.Log.With(logger.String("id", p.ID))
		skipped, err := d.Download(ctx, p, dir)
		switch {
		case err != nil && ctx.Err() != nil:
			return result, ctx.Err()
		case err != nil:
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, p.ID)
			log.Error("download failed", logger.Error(err))
		case skipped:
			result.Skipped++
			log.Debug("already downloaded")
		default:
			result.Downloaded++
			log.Info("downloaded", logger.Int("index", i+1), logger.Int("papers", len(papers)))
		}
	}

	d.Log.Info("download complete",
		logger.Int("successful", result.Successful()),
		logger.Int("downloaded", result.Downloaded),
		logger.Int("skipped", result.Skipped),
		logger.Int("failed", result.Failed))
	return result, nil
}

func (d *Downloader) wait(ctx context.Context) error {
	if d.Wait == nil {
		return httputil.Wait(ctx, d.Config.RequestDelay)
	}
	return d.Wait(ctx, d.Config.RequestDelay)
}

// fetch streams url to destPath through a temporary file that is renamed
// into place on success and removed on any failure.
func (d *Downloader) fetch(ctx context.Context, url, destPath string) error {
	if url == "" {
		return errors.New("no PDF URL")
	}
	resp, err := httputil.Get(ctx, d.Client, url, d.Config.HTTPConfig, http.Header{"Accept": {"application/pdf"}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Hide ReadFrom so io.CopyBuffer honours the fixed chunk size.
	_, copyErr := io.CopyBuffer(struct{ io.Writer }{tmpFile}, resp.Body, make([]byte, chunkSize))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

const fakePDFContent = "%PDF-1.4 fake"

// pdfServer serves fake PDFs under /pdf/ and fails everything else.
// It counts every request it receives.
type pdfServer struct {
	*httptest.Server
	requests int32
}

func newPDFServer(t *testing.T) *pdfServer {
	t.Helper()
	s := &pdfServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.requests, 1)
		switch {
		case strings.HasPrefix(r.URL.Path, "/pdf/"):
			w.Header().Set("Content-Type", "application/pdf")
			fmt.Fprint(w, fakePDFContent)
		case strings.HasPrefix(r.URL.Path, "/big/"):
			fmt.Fprint(w, strings.Repeat("x", 3*chunkSize+17))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *pdfServer) count() int { return int(atomic.LoadInt32(&s.requests)) }

func (s *pdfServer) paper(id string) types.Paper {
	return types.Paper{ID: id, PDFURL: s.URL + "/pdf/" + id + ".pdf"}
}

type recordingWait struct {
	calls int
}

func (r *recordingWait) wait(_ context.Context, d time.Duration) error {
	r.calls++
	return nil
}

func newTestDownloader(s *pdfServer, w *recordingWait) *Downloader {
	cfg := types.HarvestConfig{
		HTTPConfig:   types.HTTPConfig{UserAgent: "arxiv-harvest-test/0.1"},
		RequestDelay: 3 * time.Second,
	}
	d := NewDownloader(s.Client(), cfg, logger.NewNop())
	d.Wait = w.wait
	return d
}

func TestPDFPath(t *testing.T) {
	got, err := PDFPath("out", types.Paper{ID: "2301.07041v1"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "2301.07041v1.pdf"), got)

	for _, id := range []string{"", "../escape", "a/b"} {
		_, err := PDFPath("out", types.Paper{ID: id})
		assert.Error(t, err, "id %q", id)
	}
}

func TestDownload(t *testing.T) {
	s := newPDFServer(t)
	w := &recordingWait{}
	dir := t.TempDir()

	skipped, err := newTestDownloader(s, w).Download(context.Background(), s.paper("2301.07041v1"), dir)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, 1, w.calls)

	data, err := os.ReadFile(filepath.Join(dir, "2301.07041v1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, fakePDFContent, string(data))
	assertNoTempFiles(t, dir)
}

func TestDownloadStreamsLargeBody(t *testing.T) {
	s := newPDFServer(t)
	dir := t.TempDir()
	p := types.Paper{ID: "big", PDFURL: s.URL + "/big/doc"}

	_, err := newTestDownloader(s, &recordingWait{}).Download(context.Background(), p, dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "big.pdf"))
	require.NoError(t, err)
	assert.Equal(t, int64(3*chunkSize+17), info.Size())
}

func TestDownloadSkipsExistingWithoutDelay(t *testing.T) {
	s := newPDFServer(t)
	w := &recordingWait{}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2301.07041v1.pdf"), []byte("existing"), 0o644))

	skipped, err := newTestDownloader(s, w).Download(context.Background(), s.paper("2301.07041v1"), dir)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Zero(t, w.calls, "skip must not wait")
	assert.Zero(t, s.count(), "skip must not hit the network")

	data, err := os.ReadFile(filepath.Join(dir, "2301.07041v1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestDownloadRejectsDirectoryAtTarget(t *testing.T) {
	srv := newPDFServer(t)
	w := &recordingWait{}
	d := newTestDownloader(srv, w)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2301.07041v1.pdf"), 0o755))

	skipped, err := d.Download(context.Background(), srv.paper("2301.07041v1"), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
	assert.False(t, skipped)
	assert.Zero(t, srv.count())
	assert.Zero(t, w.calls)
}

func TestDownloadHTTPErrorLeavesNoFile(t *testing.T) {
	s := newPDFServer(t)
	w := &recordingWait{}
	dir := t.TempDir()
	p := types.Paper{ID: "missing", PDFURL: s.URL + "/nowhere/missing.pdf"}

	_, err := newTestDownloader(s, w).Download(context.Background(), p, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Equal(t, 1, w.calls, "failed downloads are still paced")

	_, statErr := os.Stat(filepath.Join(dir, "missing.pdf"))
	assert.True(t, os.IsNotExist(statErr))
	assertNoTempFiles(t, dir)
}

func TestDownloadTruncatedBodyLeavesNoFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "1000")
		fmt.Fprint(w, "%PDF-1.4 short")
	}))
	defer ts.Close()

	dir := t.TempDir()
	d := NewDownloader(ts.Client(), types.HarvestConfig{}, logger.NewNop())
	_, err := d.Download(context.Background(), types.Paper{ID: "short", PDFURL: ts.URL}, dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "short.pdf"))
	assert.True(t, os.IsNotExist(statErr))
	assertNoTempFiles(t, dir)
}

func TestDownloadAll(t *testing.T) {
	s := newPDFServer(t)
	w := &recordingWait{}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("existing"), 0o644))

	papers := []types.Paper{
		s.paper("a"),
		s.paper("b"),
		{ID: "c", PDFURL: s.URL + "/nowhere/c.pdf"},
		s.paper("d"),
	}

	result, err := newTestDownloader(s, w).DownloadAll(context.Background(), papers, dir)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"c"}, result.FailedIDs)
	assert.Equal(t, 4, result.Total())
	assert.Equal(t, 3, result.Successful())
	assert.True(t, result.HasFailures())
	assert.Equal(t, 3, w.calls, "one wait per non-skipped paper")
}

func TestDownloadAllIsIdempotent(t *testing.T) {
	s := newPDFServer(t)
	dir := t.TempDir()
	papers := []types.Paper{s.paper("a"), s.paper("b")}

	first, err := newTestDownloader(s, &recordingWait{}).DownloadAll(context.Background(), papers, dir)
	require.NoError(t, err)
	require.Equal(t, 2, first.Downloaded)
	require.Equal(t, 2, s.count())

	before, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)

	w := &recordingWait{}
	second, err := newTestDownloader(s, w).DownloadAll(context.Background(), papers, dir)
	require.NoError(t, err)

	assert.Equal(t, 2, second.Skipped)
	assert.Zero(t, second.Downloaded)
	assert.Equal(t, 2, s.count(), "second run must not issue requests")
	assert.Zero(t, w.calls)

	after, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDownloadAllStopsOnCancel(t *testing.T) {
	s := newPDFServer(t)
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	d := newTestDownloader(s, &recordingWait{})
	d.Wait = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	result, err := d.DownloadAll(ctx, []types.Paper{s.paper("a"), s.paper("b")}, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Total())
	assert.Zero(t, s.count())
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".acquire-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv API once per keyword term and
// accumulates a deduplicated, order-preserving set of papers.
package search

import (
	"context"
	"time"

	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// Searcher runs a single keyword search.
type Searcher interface {
	Search(ctx context.Context, term string, maxResults int) ([]types.Paper, error)
}

// Accumulator keeps the first occurrence of every paper ID in insertion order.
type Accumulator struct {
	seen   map[string]struct{}
	papers []types.Paper
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// Add appends p unless its ID was already added. It reports whether p was kept.
func (a *Accumulator) Add(p types.Paper) bool {
	if _, ok := a.seen[p.ID]; ok {
		return false
	}
	a.seen[p.ID] = struct{}{}
	a.papers = append(a.papers, p)
	return true
}

// Len returns the number of unique papers.
func (a *Accumulator) Len() int { return len(a.papers) }

// Papers returns the accumulated papers in insertion order.
func (a *Accumulator) Papers() []types.Paper { return a.papers }

// CollectStats summarises a CollectAll run.
type CollectStats struct {
	Terms       int
	FailedTerms int
	Hits        int
	Duplicates  int
}

// Collector searches every term in order and deduplicates the results.
type Collector struct {
	Searcher   Searcher
	MaxResults int
	Delay      time.Duration
	Wait       httputil.WaitFunc
	Log        logger.Logger
}

// NewCollector builds a Collector from the harvest configuration.
func NewCollector(s Searcher, cfg types.HarvestConfig, log logger.Logger) *Collector {
	return &Collector{
		Searcher:   s,
		MaxResults: cfg.MaxResultsPerQuery,
		Delay:      cfg.RequestDelay,
		Wait:       httputil.Wait,
		Log:        log,
	}
}

// CollectAll searches each term and returns the unique papers: outer order
// by term, inner order as returned by the API, first occurrence wins.
// A failed search counts as zero results. The collector waits Delay after
// every search, failed or not. The only error returned is the context's,
// together with whatever was collected before cancellation.
func (c *Collector) CollectAll(ctx context.Context, terms []string) ([]types.Paper, CollectStats, error) {
	acc := NewAccumulator()
	var stats CollectStats

	for i, term := range terms {
		log := c.Log.With(logger.String("term", term))
		papers, err := c.Searcher.Search(ctx, term, c.MaxResults)
		stats.Terms++
		if err != nil {
			if ctx.Err() != nil {
				return acc.Papers(), stats, ctx.Err()
			}
			stats.FailedTerms++
			log.Warn("search failed", logger.Error(err))
			papers = nil
		}

		added := 0
		for _, p := range papers {
			if acc.Add(p) {
				added++
			}
		}
		stats.Hits += len(papers)
		stats.Duplicates += len(papers) - added
		log.Info("searched",
			logger.Int("term_index", i+1),
			logger.Int("terms", len(terms)),
			logger.Int("results", len(papers)),
			logger.Int("new", added),
			logger.Int("unique_total", acc.Len()))

		if err := c.wait(ctx); err != nil {
			return acc.Papers(), stats, err
		}
	}
	return acc.Papers(), stats, nil
}

func (c *Collector) wait(ctx context.Context) error {
	if c.Wait == nil {
		return httputil.Wait(ctx, c.Delay)
	}
	return c.Wait(ctx, c.Delay)
}

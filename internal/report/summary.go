// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

const (
	topCategories = 10
	sampleTitles  = 10
	dateLayout    = "2006-01-02 15:04:05"
)

// Count is a label with its number of occurrences.
type Count struct {
	Label string
	N     int
}

// Summary holds the statistics rendered into the summary report.
type Summary struct {
	Total         int
	GeneratedAt   time.Time
	Years         []Count // descending year
	TopCategories []Count // descending count, ties in first-seen order
	SampleTitles  []string
}

// Summarize computes report statistics over papers in collection order.
// Only categories starting with categoryPrefix are ranked.
func Summarize(papers []types.Paper, categoryPrefix string, now time.Time) Summary {
	s := Summary{Total: len(papers), GeneratedAt: now}

	yearCounts := map[string]int{}
	for _, p := range papers {
		yearCounts[p.Year()]++
	}
	for y, n := range yearCounts {
		s.Years = append(s.Years, Count{Label: y, N: n})
	}
	sort.Slice(s.Years, func(i, j int) bool { return s.Years[i].Label > s.Years[j].Label })

	catIndex := map[string]int{}
	var cats []Count
	for _, p := range papers {
		for _, c := range p.Categories {
			if !strings.HasPrefix(c, categoryPrefix) {
				continue
			}
			if i, ok := catIndex[c]; ok {
				cats[i].N++
				continue
			}
			catIndex[c] = len(cats)
			cats = append(cats, Count{Label: c, N: 1})
		}
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].N > cats[j].N })
	if len(cats) > topCategories {
		cats = cats[:topCategories]
	}
	s.TopCategories = cats

	for i, p := range papers {
		if i == sampleTitles {
			break
		}
		s.SampleTitles = append(s.SampleTitles, p.Title)
	}
	return s
}

// Format writes the plain-text report to w.
func (s Summary) Format(title string, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Total papers found: %d\n", s.Total)
	fmt.Fprintf(&b, "Search date: %s\n\n", s.GeneratedAt.Format(dateLayout))

	b.WriteString("Papers by year:\n")
	for _, y := range s.Years {
		fmt.Fprintf(&b, "  %s: %d\n", y.Label, y.N)
	}

	b.WriteString("\nTop categories:\n")
	for _, c := range s.TopCategories {
		fmt.Fprintf(&b, "  %s: %d\n", c.Label, c.N)
	}

	b.WriteString("\nSample paper titles:\n")
	for i, t := range s.SampleTitles {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, t)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummary writes the report to path, replacing any existing file.
func WriteSummary(s Summary, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary report: %w", err)
	}
	if err := s.Format(title, f); err != nil {
		f.Close()
		return fmt.Errorf("writing summary report: %w", err)
	}
	return f.Close()
}

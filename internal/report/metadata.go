// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists collected papers as a JSON metadata file and
// renders the plain-text summary report.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// Well-known file names inside the output directory.
const (
	MetadataFile = "papers_metadata.json"
	SummaryFile  = "summary_report.txt"
)

// listSep joins list-valued fields in the metadata file.
const listSep = ", "

// metadataRecord is the on-disk form of a Paper. Field order is the key
// order of the written JSON objects.
type metadataRecord struct {
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Summary    string `json:"summary"`
	Published  string `json:"published"`
	Updated    string `json:"updated"`
	ID         string `json:"id"`
	PDFURL     string `json:"pdf_url"`
	Categories string `json:"categories"`
}

// SaveMetadata writes papers to path as an indented JSON array, replacing
// any existing file. Authors and categories are flattened to one string.
func SaveMetadata(papers []types.Paper, path string) error {
	records := make([]metadataRecord, len(papers))
	for i, p := range papers {
		records[i] = metadataRecord{
			Title:      p.Title,
			Authors:    strings.Join(p.Authors, listSep),
			Summary:    p.Summary,
			Published:  p.Published,
			Updated:    p.Updated,
			ID:         p.ID,
			PDFURL:     p.PDFURL,
			Categories: strings.Join(p.Categories, listSep),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// LoadMetadata reads a file written by SaveMetadata, splitting the
// flattened list fields back apart.
func LoadMetadata(path string) ([]types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var records []metadataRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}

	papers := make([]types.Paper, len(records))
	for i, r := range records {
		papers[i] = types.Paper{
			ID:         r.ID,
			Title:      r.Title,
			Summary:    r.Summary,
			Authors:    splitList(r.Authors),
			Published:  r.Published,
			Updated:    r.Updated,
			Categories: splitList(r.Categories),
			PDFURL:     r.PDFURL,
		}
	}
	return papers, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

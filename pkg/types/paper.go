// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-harvest pipeline.
// Paper is the only entity: it is created during collection, persisted once
// to the metadata file, and never mutated afterwards.
package types

// Paper holds the metadata of one arXiv search result.
type Paper struct {
	// ID is the last path segment of the Atom entry identifier
	// (e.g. "2301.07041v1"). It is the deduplication key.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Summary is the paper abstract.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published and Updated are kept in the API's native timestamp format.
	Published string `json:"published" yaml:"published"`
	Updated   string `json:"updated" yaml:"updated"`

	// Categories lists the classification tags in source order (e.g. "cs.AI").
	Categories []string `json:"categories" yaml:"categories"`

	// PDFURL is the document URL derived from the abstract page link.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// Year returns the publication year, taken as the first four characters of
// Published. Shorter values are returned whole.
func (p Paper) Year() string {
	if len(p.Published) < 4 {
		return p.Published
	}
	return p.Published[:4]
}

// Filename returns the on-disk document name for the paper.
func (p Paper) Filename() string {
	return p.ID + ".pdf"
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/arxiv-harvest/internal/httputil"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// ArxivClient queries the arXiv API, one result page per term.
type ArxivClient struct {
	Client *http.Client
	Config types.HarvestConfig
}

// NewArxivClient returns a client for cfg.APIBase.
func NewArxivClient(client *http.Client, cfg types.HarvestConfig) *ArxivClient {
	cfg.SetDefaults()
	return &ArxivClient{Client: client, Config: cfg}
}

// Search runs a quoted-phrase, all-fields query for term, newest
// submissions first. Any transport failure or non-2xx status is returned.
func (c *ArxivClient) Search(ctx context.Context, term string, maxResults int) ([]types.Paper, error) {
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResultsPerQuery
	}

	resp, err := httputil.Get(ctx, c.Client, buildQueryURL(c.Config.APIBase, term, maxResults), c.Config.HTTPConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	papers := make([]types.Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		if p, ok := paperFromItem(item); ok {
			papers = append(papers, p)
		}
	}
	return papers, nil
}

func buildQueryURL(base, term string, maxResults int) string {
	params := url.Values{}
	params.Set("search_query", `all:"`+term+`"`)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	return base + "?" + params.Encode()
}

// paperFromItem maps an Atom entry to a Paper. Entries without an
// identifier are rejected.
func paperFromItem(item *gofeed.Item) (types.Paper, bool) {
	id := extractArxivID(item.GUID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:         id,
		Title:      strings.Join(strings.Fields(item.Title), " "),
		Summary:    strings.TrimSpace(item.Description),
		Published:  item.Published,
		Updated:    item.Updated,
		Categories: item.Categories,
	}
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}

	link := item.Link
	if link == "" {
		link = item.GUID
	}
	p.PDFURL = pdfURL(link)
	return p, true
}

// extractArxivID returns the last path segment of the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1").
func extractArxivID(idURL string) string {
	idURL = strings.TrimRight(strings.TrimSpace(idURL), "/")
	if idURL == "" {
		return ""
	}
	return idURL[strings.LastIndex(idURL, "/")+1:]
}

// pdfURL turns an abstract page link into its PDF link:
// "http://arxiv.org/abs/2301.07041v1" → "http://arxiv.org/pdf/2301.07041v1.pdf".
func pdfURL(absLink string) string {
	return strings.Replace(absLink, "/abs/", "/pdf/", 1) + ".pdf"
}

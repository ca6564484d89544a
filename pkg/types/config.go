// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for HarvestConfig.
const (
	DefaultAPIBase            = "https://export.arxiv.org/api/query"
	DefaultOutputDir          = "procgen_papers"
	DefaultMaxResultsPerQuery = 1000
	DefaultCategoryPrefix     = "cs."
	DefaultReportTitle        = "ArXiv Procedural Generation Papers - Summary Report"
	DefaultUserAgent          = "arxiv-harvest/0.1"

	// DefaultRequestDelay follows the arXiv API terms of use: no more than
	// one request every three seconds.
	DefaultRequestDelay = 3 * time.Second
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format"`
}

// HarvestConfig holds every setting of a harvest run. It is passed
// explicitly into the collector and the downloader.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the arXiv search endpoint.
	APIBase string `json:"api_base" yaml:"api_base"`

	// Terms is the ordered keyword list. Each term is searched as a quoted phrase.
	Terms []string `json:"terms" yaml:"terms"`

	// MaxResultsPerQuery caps the results of a single search request.
	MaxResultsPerQuery int `json:"max_results_per_query" yaml:"max_results_per_query"`

	// RequestDelay is waited after every search and before every download
	// that reaches the network. Zero disables the wait, and SetDefaults keeps
	// it that way; callers talking to the real arXiv API should set
	// DefaultRequestDelay, as the CLI does.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// OutputDir receives the metadata file, the summary report, and the PDFs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxPapers truncates the collected set. Zero keeps everything.
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// SkipDownload stops the run after the summary report.
	SkipDownload bool `json:"skip_download" yaml:"skip_download"`

	// CategoryPrefix restricts the summary's category ranking (e.g. "cs.").
	CategoryPrefix string `json:"category_prefix" yaml:"category_prefix"`

	// ReportTitle is the first line of the summary report.
	ReportTitle string `json:"report_title" yaml:"report_title"`

	Log LogConfig `json:"log" yaml:"log"`
}

// SetDefaults fills zero-valued fields. Terms are left alone; the search
// package owns the default keyword list. RequestDelay is only clamped at
// zero, since zero is a valid setting that disables pacing.
func (c *HarvestConfig) SetDefaults() {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.MaxResultsPerQuery <= 0 {
		c.MaxResultsPerQuery = DefaultMaxResultsPerQuery
	}
	if c.RequestDelay < 0 {
		c.RequestDelay = 0
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.MaxPapers < 0 {
		c.MaxPapers = 0
	}
	if c.CategoryPrefix == "" {
		c.CategoryPrefix = DefaultCategoryPrefix
	}
	if c.ReportTitle == "" {
		c.ReportTitle = DefaultReportTitle
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

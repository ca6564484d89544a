// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-harvest CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-harvest/internal/logger"
	"github.com/pdiddy/arxiv-harvest/internal/search"
	"github.com/pdiddy/arxiv-harvest/internal/secrets"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds values loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// log is built from the configuration before any command runs.
	log logger.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "arxiv-harvest",
	Short: "Collect arXiv papers on procedural generation",
	Long: `arxiv-harvest searches arXiv once per keyword term, deduplicates the
results by arXiv identifier, writes papers_metadata.json and summary_report.txt
to the output directory, and downloads every paper's PDF.

PDFs already present in the output directory are not downloaded again, so an
interrupted harvest can simply be re-run. Requests are spaced by a fixed delay
(default 3s) to respect the arXiv API terms of use.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		l, err := logger.New(types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})
		if err != nil {
			return err
		}
		log = l

		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", logger.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	RunE: runHarvest,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./arxiv-harvest.yaml or ~/.config/arxiv-harvest/config.yaml)")
	pf.StringP("output-dir", "o", types.DefaultOutputDir, "directory for metadata, summary report, and PDFs")

	f := rootCmd.Flags()
	f.IntP("max-papers", "m", 0, "maximum number of papers to keep (default: all)")
	f.Bool("skip-download", false, "only search and save metadata and summary, skip downloading PDFs")

	viper.BindPFlag("output_dir", pf.Lookup("output-dir"))
	viper.BindPFlag("max_papers", f.Lookup("max-papers"))
	viper.BindPFlag("skip_download", f.Lookup("skip-download"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-harvest"))
		}
	}

	setConfigDefaults()
	bindEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setConfigDefaults registers the defaults viper falls back to when no flag,
// environment variable, or config file sets a key.
func setConfigDefaults() {
	viper.SetDefault("request_delay", types.DefaultRequestDelay)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// bindEnv maps ARXIV_HARVEST_* variables onto config keys (log.level is read
// from ARXIV_HARVEST_LOG_LEVEL).
func bindEnv() {
	viper.SetEnvPrefix("ARXIV_HARVEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// configTerms reads the keyword list. Lists from a config file are used as
// is. A plain string, as set through ARXIV_HARVEST_TERMS, is split on commas
// and newlines only, so multi-word phrases stay whole.
func configTerms() []string {
	raw, ok := viper.Get("terms").(string)
	if !ok {
		return viper.GetStringSlice("terms")
	}
	var terms []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// loadConfig assembles the harvest configuration from flags, environment,
// and config file, in viper's usual precedence.
func loadConfig() types.HarvestConfig {
	cfg := types.HarvestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		APIBase:            viper.GetString("api_base"),
		Terms:              configTerms(),
		MaxResultsPerQuery: viper.GetInt("max_results_per_query"),
		RequestDelay:       viper.GetDuration("request_delay"),
		OutputDir:          viper.GetString("output_dir"),
		MaxPapers:          viper.GetInt("max_papers"),
		SkipDownload:       viper.GetBool("skip_download"),
		CategoryPrefix:     viper.GetString("category_prefix"),
		ReportTitle:        viper.GetString("report_title"),
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
	if len(cfg.Terms) == 0 {
		cfg.Terms = search.DefaultTerms()
	}
	cfg.SetDefaults()
	cfg.UserAgent = secrets.UserAgent(cfg.UserAgent, loadedSecrets)
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

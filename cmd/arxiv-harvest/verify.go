// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-harvest/internal/acquire"
	"github.com/pdiddy/arxiv-harvest/internal/logger"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that downloaded PDFs are readable",
	Long: `Verify opens every PDF in the output directory and counts its pages.
A file that cannot be read would block its own re-download, because an
existing file is always skipped; use --remove-invalid to delete such files so
the next harvest fetches them again.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Bool("remove-invalid", false, "delete unreadable PDFs so they are downloaded again")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	removeInvalid, _ := cmd.Flags().GetBool("remove-invalid")

	results, err := acquire.Verify(cfg.OutputDir)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Pages", "Status"})
	invalid := 0
	for _, r := range results {
		status := "ok"
		if !r.Valid() {
			invalid++
			status = "invalid"
			log.Warn("unreadable PDF", logger.String("path", r.Path), logger.Error(r.Err))
		}
		t.AppendRow(table.Row{r.ID, r.Pages, status})
	}
	t.AppendFooter(table.Row{"Total", len(results), fmt.Sprintf("%d invalid", invalid)})
	t.Render()

	if invalid == 0 {
		return nil
	}
	if !removeInvalid {
		return fmt.Errorf("%d unreadable PDF(s) in %s", invalid, cfg.OutputDir)
	}
	removed, err := acquire.RemoveInvalid(results)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d unreadable PDF(s); re-run the harvest to download them again\n", removed)
	return nil
}

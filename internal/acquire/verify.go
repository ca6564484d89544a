// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu would otherwise install a config file under the user config dir.
	api.DisableConfigDir()
}

// VerifyResult describes one PDF found in the output directory.
type VerifyResult struct {
	ID    string
	Path  string
	Pages int
	Err   error
}

// Valid reports whether pdfcpu could read the file.
func (r VerifyResult) Valid() bool { return r.Err == nil }

// Verify page-counts every *.pdf in dir, sorted by file name. Files pdfcpu
// cannot read are returned with Err set. Temporary download files are ignored.
func Verify(dir string) ([]VerifyResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var results []VerifyResult
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		path := filepath.Join(dir, name)
		pages, err := pageCount(path)
		results = append(results, VerifyResult{
			ID:    strings.TrimSuffix(name, filepath.Ext(name)),
			Path:  path,
			Pages: pages,
			Err:   err,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// RemoveInvalid deletes every invalid file in results so the next harvest
// downloads it again. It returns the number of files removed.
func RemoveInvalid(results []VerifyResult) (int, error) {
	removed := 0
	for _, r := range results {
		if r.Valid() {
			continue
		}
		if err := os.Remove(r.Path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("removing %s: %w", r.Path, err)
		}
		removed++
	}
	return removed, nil
}

func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(f, conf)
}

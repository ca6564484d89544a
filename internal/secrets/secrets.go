// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads private settings from a directory of plain-text
// files: the file name is the key and the trimmed contents are the value.
// arXiv needs no credentials; the only key read today is ContactEmailKey,
// which identifies the harvester to the API operators.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContactEmailKey names the file holding the operator's contact address.
const ContactEmailKey = "contact-email"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Hidden files, subdirectories, and empty files are ignored.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading secret %s: %w", name, err)
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// UserAgent appends a mailto contact to base when the secrets carry one:
// "arxiv-harvest/0.1" becomes "arxiv-harvest/0.1 (mailto:me@example.com)".
func UserAgent(base string, secrets map[string]string) string {
	email := secrets[ContactEmailKey]
	if email == "" || strings.Contains(base, "mailto:") {
		return base
	}
	return fmt.Sprintf("%s (mailto:%s)", base, email)
}

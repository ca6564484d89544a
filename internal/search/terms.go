// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed terms.yaml
var defaultTermsYAML []byte

type termsFile struct {
	Terms []string `yaml:"terms"`
}

// ParseTerms decodes a YAML document with a top-level "terms" list.
func ParseTerms(data []byte) ([]string, error) {
	var tf termsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing terms: %w", err)
	}
	return tf.Terms, nil
}

// DefaultTerms returns the built-in procedural generation keyword list.
func DefaultTerms() []string {
	terms, err := ParseTerms(defaultTermsYAML)
	if err != nil {
		panic(err)
	}
	return terms
}

package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/agrodetect/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a custom catalog:
//
//	default_language: English
//	languages:
//	  English:
//	    - key: rust
//	      designation: Rust Disease
//	      ...
type catalogFile struct {
	DefaultLanguage string                            `yaml:"default_language"`
	Languages       map[string][]models.DiseaseRecord `yaml:"languages"`
}

// Load reads a YAML catalog from disk.
func Load(filePath string) (*Catalog, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return FromReader(file)
}

// FromReader parses and validates a YAML catalog.
func FromReader(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	fallback := raw.DefaultLanguage
	if fallback == "" {
		fallback = DefaultLanguage
	}

	return New(fallback, raw.Languages)
}

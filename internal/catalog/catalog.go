// Package catalog holds the localized disease tables and the filename
// classification used by the detect endpoint.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agrodetect/backend/internal/models"
)

// DefaultLanguage is the fallback for missing or unknown language values.
const DefaultLanguage = "English"

const (
	healthyMarker = "healthy"
	rustMarker    = "rust"
)

var (
	ErrEmptyCatalog    = errors.New("catalog has no languages")
	ErrMissingFallback = errors.New("catalog is missing the fallback language")
)

// Catalog is an immutable set of language tables. It is built once at
// startup and shared by every request.
type Catalog struct {
	fallback string
	tables   map[string][]models.DiseaseRecord
}

// New validates the tables and returns a catalog owning copies of them.
// Every table must be non-empty and end with a healthy record.
func New(fallback string, tables map[string][]models.DiseaseRecord) (*Catalog, error) {
	if len(tables) == 0 {
		return nil, ErrEmptyCatalog
	}
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingFallback, fallback)
	}

	owned := make(map[string][]models.DiseaseRecord, len(tables))
	for lang, records := range tables {
		if len(records) == 0 {
			return nil, fmt.Errorf("language %q has no records", lang)
		}
		if !isHealthy(records[len(records)-1]) {
			return nil, fmt.Errorf("language %q: last record %q is not a healthy record",
				lang, records[len(records)-1].Designation)
		}
		owned[lang] = slices.Clone(records)
	}

	return &Catalog{fallback: fallback, tables: owned}, nil
}

// Fallback returns the language used when a request names none or an unknown one.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Languages returns the supported language identifiers in sorted order.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.tables))
	for lang := range c.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Resolve maps a requested language onto a supported one.
func (c *Catalog) Resolve(lang string) string {
	if _, ok := c.tables[lang]; ok {
		return lang
	}
	return c.fallback
}

// Table returns a copy of the resolved language's table.
func (c *Catalog) Table(lang string) (string, []models.DiseaseRecord) {
	resolved := c.Resolve(lang)
	return resolved, slices.Clone(c.tables[resolved])
}

// Classify picks the records matching an uploaded filename:
// a "healthy" name yields the healthy record, a "rust" name yields the
// rust records (possibly none), anything else yields the whole table.
func (c *Catalog) Classify(lang, filename string) []models.DiseaseRecord {
	_, table := c.Table(lang)
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, healthyMarker):
		return table[len(table)-1:]
	case strings.Contains(name, rustMarker):
		matches := make([]models.DiseaseRecord, 0, 1)
		for _, rec := range table {
			if hasMarker(rec, rustMarker) {
				matches = append(matches, rec)
			}
		}
		return matches
	default:
		return table
	}
}

func isHealthy(rec models.DiseaseRecord) bool {
	return hasMarker(rec, healthyMarker)
}

// hasMarker checks the designation and the language-neutral key, so that
// localized designations without the Latin word still match.
func hasMarker(rec models.DiseaseRecord, marker string) bool {
	return strings.Contains(strings.ToLower(rec.Designation), marker) ||
		strings.Contains(strings.ToLower(rec.Key), marker)
}

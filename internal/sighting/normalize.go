package sighting

import (
	"strings"
)

// Normalizer maps raw location and species strings onto the canonical forms
// stored in the repository. The same normalizer is applied at ingestion time
// and to incoming filter values, so user-typed filters in any casing still
// match stored rows.
//
// The synonym table is configuration: it is built once at startup and never
// mutated afterwards, so a single instance is safe to share across requests.
type Normalizer struct {
	synonyms map[string]string // lowercased alias -> canonical species
}

// NewNormalizer builds a Normalizer from an alias table. Keys are matched
// case-insensitively; values are used verbatim as canonical species names.
func NewNormalizer(synonyms map[string]string) *Normalizer {
	table := make(map[string]string, len(synonyms))
	for alias, canonical := range synonyms {
		table[strings.ToLower(strings.TrimSpace(alias))] = canonical
	}
	return &Normalizer{synonyms: table}
}

// DefaultSynonyms covers the common-name aliases and misspellings seen in
// field spreadsheets. Deployments with their own vocabulary override this
// via configuration.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"sheep tick":       "Castor Bean Tick",
		"castor bean tick": "Castor Bean Tick",
		"castorbean tick":  "Castor Bean Tick",
		"deer tick":        "Castor Bean Tick",
		"meadow tick":      "Ornate Cow Tick",
		"ornate cow tick":  "Ornate Cow Tick",
		"marsh tick":       "Ornate Cow Tick",
		"hedgehog tick":    "Hedgehog Tick",
		"fox tick":         "Hedgehog Tick",
		"dog tick":         "Brown Dog Tick",
		"brown dog tick":   "Brown Dog Tick",
		"kennel tick":      "Brown Dog Tick",
	}
}

// Location trims and title-cases a raw location so that "amsterdam",
// "AMSTERDAM " and "Amsterdam" all store and match as the same value.
func (n *Normalizer) Location(raw string) string {
	return titleCase(strings.TrimSpace(raw))
}

// Species maps a raw species string to its canonical name. The second
// return value is false when the value was not in the synonym table; such
// species are kept as-is (title-cased) so no data is lost, but ingestion
// records a warning for them.
func (n *Normalizer) Species(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := n.synonyms[strings.ToLower(trimmed)]; ok {
		return canonical, true
	}
	return titleCase(trimmed), false
}

// titleCase uppercases the first letter of every space-separated word and
// lowercases the rest. Good enough for place and common species names; we
// deliberately avoid locale-aware casing here since the dataset is ASCII.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

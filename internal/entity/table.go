package entity

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// AliasEntry maps one surface string to a canonical ticker and display name
type AliasEntry struct {
	Surface string // case-normalized nickname or symbol
	Ticker  string
	Name    string
}

// shortSurfaceMax is the surface length (in runes) at or below which the
// static layer is treated as manually curated: the dynamic layer may add
// new short entries but never replace existing ones. Single-letter and
// two-letter collisions from automated feeds are too noisy to trust.
const shortSurfaceMax = 2

// AliasTable is an immutable, flattened surface-string → ticker mapping
// built once per run from a static layer merged with an optional dynamic
// override layer.
type AliasTable struct {
	entries map[string]AliasEntry
	// surfaces sorted longest-first so that a longer nickname containing
	// a shorter one wins over the substring
	surfaces []string
}

// NewAliasTable merges the static and dynamic layers into one resolution
// table. The dynamic layer overrides the static one on the same surface
// string, except for short curated surfaces (<= 2 runes), which it may
// only add, never replace. Malformed entries are a configuration error.
func NewAliasTable(static, dynamic []AliasEntry) (*AliasTable, error) {
	entries := make(map[string]AliasEntry, len(static)+len(dynamic))

	for i, e := range static {
		norm, err := normalizeEntry(e)
		if err != nil {
			return nil, fmt.Errorf("static alias %d: %w", i, err)
		}
		if _, dup := entries[norm.Surface]; dup {
			return nil, fmt.Errorf("static alias %d: duplicate surface %q", i, norm.Surface)
		}
		entries[norm.Surface] = norm
	}

	for i, e := range dynamic {
		norm, err := normalizeEntry(e)
		if err != nil {
			return nil, fmt.Errorf("dynamic alias %d: %w", i, err)
		}
		if _, exists := entries[norm.Surface]; exists && utf8.RuneCountInString(norm.Surface) <= shortSurfaceMax {
			continue // curated abbreviation, freshness does not apply
		}
		entries[norm.Surface] = norm
	}

	surfaces := make([]string, 0, len(entries))
	for s := range entries {
		surfaces = append(surfaces, s)
	}
	sort.Slice(surfaces, func(i, j int) bool {
		if len(surfaces[i]) != len(surfaces[j]) {
			return len(surfaces[i]) > len(surfaces[j])
		}
		return surfaces[i] < surfaces[j] // deterministic order among equals
	})

	return &AliasTable{entries: entries, surfaces: surfaces}, nil
}

// Lookup returns the entry for a normalized surface string
func (t *AliasTable) Lookup(surface string) (AliasEntry, bool) {
	e, ok := t.entries[strings.ToLower(surface)]
	return e, ok
}

// Len returns the number of resolvable surface strings
func (t *AliasTable) Len() int {
	return len(t.entries)
}

func normalizeEntry(e AliasEntry) (AliasEntry, error) {
	e.Surface = strings.ToLower(strings.TrimSpace(e.Surface))
	e.Ticker = strings.TrimSpace(e.Ticker)
	if e.Surface == "" {
		return e, fmt.Errorf("empty surface string")
	}
	if e.Ticker == "" {
		return e, fmt.Errorf("surface %q: empty ticker", e.Surface)
	}
	return e, nil
}

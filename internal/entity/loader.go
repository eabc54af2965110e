package entity

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadAliasFile reads an alias definition file. The format is a YAML
// mapping from surface string to [ticker, display name]; keys starting
// with "_" are metadata and skipped:
//
//	台積: ["2330", "台積電"]
//	gg: ["2330", "台積電"]
//
// Malformed entries fail the load; this is a configuration error and is
// surfaced before any batch is processed.
func LoadAliasFile(path string) ([]AliasEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	return ParseAliasYAML(data)
}

// LoadAliasFileOptional is LoadAliasFile for layers that may not exist
// yet (the dynamic layer before its first feed run). A missing file is
// an empty layer; any other failure is still a configuration error.
func LoadAliasFileOptional(path string) ([]AliasEntry, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadAliasFile(path)
}

// ParseAliasYAML parses alias definitions from YAML bytes
func ParseAliasYAML(data []byte) ([]AliasEntry, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	entries := make([]AliasEntry, 0, len(raw))
	for surface, pair := range raw {
		if strings.HasPrefix(surface, "_") {
			continue
		}
		if len(pair) < 2 {
			return nil, fmt.Errorf("alias %q: want [ticker, name], got %d elements", surface, len(pair))
		}
		entries = append(entries, AliasEntry{
			Surface: surface,
			Ticker:  pair[0],
			Name:    pair[1],
		})
	}

	// YAML map iteration order is random; keep load order deterministic
	sort.Slice(entries, func(i, j int) bool { return entries[i].Surface < entries[j].Surface })

	return entries, nil
}

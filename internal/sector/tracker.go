// Package sector ranks keyword-defined topic groups by how many posts
// in a batch mention them, capturing which themes retail attention is
// rotating into.
package sector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
	"gopkg.in/yaml.v3"
)

// Definition is one topic group: a name and the keywords that mark a
// post as discussing it. Static for the process lifetime.
type Definition struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tracker counts sector mentions across a batch. Counting is post-level
// presence: a post citing three keywords of one sector still counts once
// for that sector. Sectors with zero mentions are omitted from reports.
type Tracker struct {
	definitions []Definition
	// keywords lowercased once at construction
	keywords [][]string
}

// NewTracker validates the definitions and builds a tracker. Malformed
// definitions are a configuration error, rejected before any batch runs.
func NewTracker(definitions []Definition) (*Tracker, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("no sector definitions")
	}

	seen := make(map[string]bool, len(definitions))
	keywords := make([][]string, len(definitions))
	for i, def := range definitions {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("sector %d: empty name", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("sector %q: duplicate definition", def.Name)
		}
		seen[def.Name] = true
		if len(def.Keywords) == 0 {
			return nil, fmt.Errorf("sector %q: no keywords", def.Name)
		}
		kws := make([]string, len(def.Keywords))
		for j, kw := range def.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("sector %q: empty keyword", def.Name)
			}
			kws[j] = kw
		}
		keywords[i] = kws
	}

	return &Tracker{definitions: definitions, keywords: keywords}, nil
}

// Analyze counts per-sector post mentions and ranks sectors by count
// descending; ties preserve definition order. Empty batch → empty report.
func (t *Tracker) Analyze(posts []*model.Post) model.SectorReport {
	heats := make([]model.SectorHeat, len(t.definitions))
	for i, def := range t.definitions {
		heats[i] = model.SectorHeat{Sector: def.Name}
	}

	for _, post := range posts {
		text := strings.ToLower(post.FullText())

		for i := range t.definitions {
			matched := matchedKeywords(text, t.keywords[i])
			if len(matched) == 0 {
				continue
			}
			h := &heats[i]
			h.MentionCount++
			h.MatchedKeywords = mergeKeywords(h.MatchedKeywords, matched)
			if len(h.SampleTitles) < 3 && !containsString(h.SampleTitles, post.Title) {
				h.SampleTitles = append(h.SampleTitles, post.Title)
			}
		}
	}

	ranked := heats[:0:0]
	for _, h := range heats {
		if h.MentionCount > 0 {
			ranked = append(ranked, h)
		}
	}
	// stable sort keeps definition order on equal counts
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MentionCount > ranked[j].MentionCount
	})

	return model.SectorReport{TotalPosts: len(posts), Sectors: ranked}
}

func matchedKeywords(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func mergeKeywords(existing, matched []string) []string {
	for _, kw := range matched {
		if !containsString(existing, kw) {
			existing = append(existing, kw)
		}
	}
	return existing
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// LoadDefinitions reads an ordered sector definition file. Order matters:
// it is the tie-break for equal mention counts.
//
//	- name: AI伺服器
//	  keywords: [ai, 伺服器, 算力]
func LoadDefinitions(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse sector file: %w", err)
	}
	return defs, nil
}

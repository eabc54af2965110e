package entity

import (
	"regexp"
	"strings"

	"github.com/mkuo/stockpulse/internal/model"
)

// Options selects which low-priority recognition passes run after the
// alias table. These passes never shadow an alias hit: a ticker already
// resolved through its nickname is skipped.
type Options struct {
	// DigitCodes recognizes bare 4–6 digit security codes with an
	// optional ".TW" suffix (Taiwan market style)
	DigitCodes bool
	// DollarTags recognizes the "$NVDA" cashtag syntax
	DollarTags bool
	// BareSymbols recognizes 2–5 letter all-uppercase tokens, filtered
	// through a common-word exclusion list (noisy; Reddit style)
	BareSymbols bool
}

var (
	dollarTickerRE = regexp.MustCompile(`\$([A-Z]{1,5})\b`)
	bareTickerRE   = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
)

// span is a half-open byte range of text claimed by a longer alias,
// blocking shorter aliases and bare codes from matching inside it
type span struct{ start, end int }

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// Resolver scans free text against an AliasTable and emits ordered,
// duplicate-ticker-suppressed entity matches.
type Resolver struct {
	table *AliasTable
	opts  Options
}

// NewResolver creates a resolver over an immutable alias table
func NewResolver(table *AliasTable, opts Options) *Resolver {
	return &Resolver{table: table, opts: opts}
}

// Resolve finds all recognizable entities in text. It is total: no match
// returns an empty slice, never an error. Resolving the same text twice
// yields identical, order-stable results.
func (r *Resolver) Resolve(text string) []model.EntityMatch {
	var matches []model.EntityMatch
	seen := make(map[string]bool)

	lower := strings.ToLower(text)

	// 1. Alias pass, longest surface first. Every occurrence of a matched
	// surface claims its span, so a shorter alias embedded in a longer one
	// ("台積" inside "台積電ADR") never fires on the same characters.
	var claimed []span
	for _, surface := range r.table.surfaces {
		hit := false
		for from := 0; ; {
			idx := strings.Index(lower[from:], surface)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(surface)
			from = end
			if overlaps(claimed, start, end) {
				continue
			}
			claimed = append(claimed, span{start, end})
			hit = true
		}
		if !hit {
			continue
		}
		e := r.table.entries[surface]
		if seen[e.Ticker] {
			continue
		}
		seen[e.Ticker] = true
		matches = append(matches, model.EntityMatch{
			Ticker:  e.Ticker,
			Name:    e.Name,
			Matched: surface,
		})
	}

	// 2. Bare numeric codes have lowest priority, run only where the alias
	// tables did not already claim the text, so an explicit alias is
	// never shadowed by its own code
	if r.opts.DigitCodes {
		matches = appendDigitCodes(lower, claimed, seen, matches)
	}

	// 3. $TICKER cashtags
	if r.opts.DollarTags {
		for _, m := range dollarTickerRE.FindAllStringSubmatch(text, -1) {
			ticker := m[1]
			if seen[ticker] {
				continue
			}
			seen[ticker] = true
			matches = append(matches, model.EntityMatch{Ticker: ticker, Matched: "$" + ticker})
		}
	}

	// 4. Bare uppercase tokens, minus common English words
	if r.opts.BareSymbols {
		for _, m := range bareTickerRE.FindAllStringSubmatch(text, -1) {
			ticker := m[1]
			if seen[ticker] || commonWords[ticker] {
				continue
			}
			seen[ticker] = true
			matches = append(matches, model.EntityMatch{Ticker: ticker, Matched: ticker})
		}
	}

	return matches
}

// appendDigitCodes scans for maximal ASCII digit runs of length 4–6.
// Adjacent digits disqualify a run; adjacent letters or CJK text do not,
// since codes are routinely glued to prose ("2330要噴了").
func appendDigitCodes(text string, claimed []span, seen map[string]bool, matches []model.EntityMatch) []model.EntityMatch {
	for i := 0; i < len(text); {
		if !isDigit(text[i]) {
			i++
			continue
		}
		start := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		runLen := i - start
		if runLen < 4 || runLen > 6 {
			continue
		}
		if overlaps(claimed, start, i) {
			continue
		}
		ticker := text[start:i]
		matched := ticker
		if strings.HasPrefix(text[i:], ".tw") {
			matched = ticker + ".TW"
		}
		if seen[ticker] {
			continue
		}
		seen[ticker] = true
		matches = append(matches, model.EntityMatch{Ticker: ticker, Matched: matched})
	}
	return matches
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Package feed refreshes the dynamic alias layer from exchange data.
// Nicknames like 股王 (highest-priced stock) move with the market, so
// they are recomputed from the TWSE and TPEX open quote APIs instead
// of living in the curated alias file.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mkuo/stockpulse/internal/fetch"
)

const (
	twseQuotesURL = "https://openapi.twse.com.tw/v1/exchangeReport/STOCK_DAY_ALL"
	tpexQuotesURL = "https://www.tpex.org.tw/openapi/v1/tpex_mainboard_quotes"
)

// Quote is one stock's closing price
type Quote struct {
	Code  string
	Name  string
	Close float64
}

// Updater computes dynamic aliases and writes the dynamic alias file
type Updater struct {
	client *fetch.Client

	// endpoint overrides for tests
	TWSEURL string
	TPEXURL string
}

// NewUpdater creates an updater using the shared fetch client
func NewUpdater(client *fetch.Client) *Updater {
	return &Updater{client: client, TWSEURL: twseQuotesURL, TPEXURL: tpexQuotesURL}
}

// ComputeAliases queries both exchanges and derives the nickname map:
// 股王 is the highest close across listed and OTC boards, 股后 the
// second highest. One exchange failing is tolerated; both failing or
// an empty market snapshot is an error so stale aliases stay in place.
func (u *Updater) ComputeAliases(ctx context.Context) (map[string][]string, error) {
	var quotes []Quote
	var errs []string

	if body, err := u.client.Get(ctx, u.TWSEURL); err != nil {
		errs = append(errs, fmt.Sprintf("twse: %v", err))
	} else if parsed, err := parseTWSE(body); err != nil {
		errs = append(errs, fmt.Sprintf("twse: %v", err))
	} else {
		quotes = append(quotes, parsed...)
	}

	if body, err := u.client.Get(ctx, u.TPEXURL); err != nil {
		errs = append(errs, fmt.Sprintf("tpex: %v", err))
	} else if parsed, err := parseTPEX(body); err != nil {
		errs = append(errs, fmt.Sprintf("tpex: %v", err))
	} else {
		quotes = append(quotes, parsed...)
	}

	if len(quotes) == 0 {
		if len(errs) > 0 {
			return nil, fmt.Errorf("no quotes available: %s", strings.Join(errs, "; "))
		}
		return nil, fmt.Errorf("no quotes available")
	}
	return rankAliases(quotes), nil
}

// Update recomputes the aliases and writes them as YAML to path
func (u *Updater) Update(ctx context.Context, path string) error {
	aliases, err := u.ComputeAliases(ctx)
	if err != nil {
		return err
	}

	doc := make(map[string][]string, len(aliases)+1)
	for k, v := range aliases {
		doc[k] = v
	}
	// underscore keys are metadata, the alias loader skips them
	doc["_updated_at"] = []string{time.Now().UTC().Format(time.RFC3339)}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal aliases: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// rankAliases sorts by close descending and names the top two
func rankAliases(quotes []Quote) map[string][]string {
	sorted := make([]Quote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Close > sorted[j].Close })

	aliases := make(map[string][]string, 2)
	if len(sorted) >= 1 {
		aliases["股王"] = []string{sorted[0].Code, sorted[0].Name}
	}
	if len(sorted) >= 2 {
		aliases["股后"] = []string{sorted[1].Code, sorted[1].Name}
	}
	return aliases
}

type twseRow struct {
	Code         string `json:"Code"`
	Name         string `json:"Name"`
	ClosingPrice string `json:"ClosingPrice"`
}

type tpexRow struct {
	SecuritiesCompanyCode string `json:"SecuritiesCompanyCode"`
	CompanyName           string `json:"CompanyName"`
	Close                 string `json:"Close"`
}

func parseTWSE(body []byte) ([]Quote, error) {
	var rows []twseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	quotes := make([]Quote, 0, len(rows))
	for _, r := range rows {
		price, ok := parsePrice(r.ClosingPrice)
		if r.Code == "" || !ok {
			continue
		}
		quotes = append(quotes, Quote{Code: r.Code, Name: r.Name, Close: price})
	}
	return quotes, nil
}

func parseTPEX(body []byte) ([]Quote, error) {
	var rows []tpexRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	quotes := make([]Quote, 0, len(rows))
	for _, r := range rows {
		price, ok := parsePrice(r.Close)
		if r.SecuritiesCompanyCode == "" || !ok {
			continue
		}
		quotes = append(quotes, Quote{Code: r.SecuritiesCompanyCode, Name: r.CompanyName, Close: price})
	}
	return quotes, nil
}

// parsePrice tolerates thousand separators and the exchanges' "--"
// placeholder for untraded stocks
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" || cleaned == "--" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

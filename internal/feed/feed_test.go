package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkuo/stockpulse/internal/entity"
	"github.com/mkuo/stockpulse/internal/fetch"
	"github.com/mkuo/stockpulse/internal/model"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1,085.00", 1085, true},
		{"42.5", 42.5, true},
		{"--", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.raw)
		if got != c.want || ok != c.ok {
			t.Errorf("parsePrice(%q) = %v,%v want %v,%v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestParseTWSE_SkipsUntraded(t *testing.T) {
	body := `[
		{"Code": "2330", "Name": "台積電", "ClosingPrice": "1,085.00"},
		{"Code": "9999", "Name": "停牌股", "ClosingPrice": "--"},
		{"Code": "", "Name": "壞資料", "ClosingPrice": "1.00"}
	]`
	quotes, err := parseTWSE([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Code != "2330" || quotes[0].Close != 1085 {
		t.Errorf("quotes = %+v", quotes)
	}
}

func TestRankAliases(t *testing.T) {
	quotes := []Quote{
		{Code: "2330", Name: "台積電", Close: 1085},
		{Code: "3008", Name: "大立光", Close: 2300},
		{Code: "5274", Name: "信驊", Close: 3990},
	}
	aliases := rankAliases(quotes)

	if got := aliases["股王"]; len(got) != 2 || got[0] != "5274" {
		t.Errorf("股王 = %v", got)
	}
	if got := aliases["股后"]; len(got) != 2 || got[0] != "3008" {
		t.Errorf("股后 = %v", got)
	}
}

func TestRankAliases_SingleQuote(t *testing.T) {
	aliases := rankAliases([]Quote{{Code: "2330", Name: "台積電", Close: 1085}})
	if _, ok := aliases["股后"]; ok {
		t.Error("股后 needs a second quote")
	}
	if got := aliases["股王"]; len(got) != 2 || got[0] != "2330" {
		t.Errorf("股王 = %v", got)
	}
}

func TestUpdate_WritesLoadableAliasLayer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/twse":
			_, _ = w.Write([]byte(`[{"Code": "5274", "Name": "信驊", "ClosingPrice": "3,990.00"}]`))
		case "/tpex":
			// one exchange down is tolerated
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := model.DefaultConfig()
	cfg.HTTP.RequestDelay = 0
	cfg.HTTP.RatePerSec = 1000
	u := NewUpdater(fetch.NewClient(cfg, nil))
	u.TWSEURL = srv.URL + "/twse"
	u.TPEXURL = srv.URL + "/tpex"

	path := filepath.Join(t.TempDir(), "dynamic_aliases.yaml")
	if err := u.Update(context.Background(), path); err != nil {
		t.Fatalf("update: %v", err)
	}

	layer, err := entity.LoadAliasFile(path)
	if err != nil {
		t.Fatalf("written file must load as an alias layer: %v", err)
	}
	found := false
	for _, e := range layer {
		if e.Surface == "股王" && e.Ticker == "5274" {
			found = true
		}
		if e.Surface == "_updated_at" {
			t.Error("metadata keys must not become aliases")
		}
	}
	if !found {
		t.Errorf("expected 股王 → 5274 in layer, got %+v", layer)
	}
}

func TestComputeAliases_AllExchangesDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := model.DefaultConfig()
	cfg.HTTP.RequestDelay = 0
	cfg.HTTP.RatePerSec = 1000
	u := NewUpdater(fetch.NewClient(cfg, nil))
	u.TWSEURL = srv.URL + "/twse"
	u.TPEXURL = srv.URL + "/tpex"

	if _, err := u.ComputeAliases(context.Background()); err == nil {
		t.Error("expected error when no exchange answers")
	}
	if _, err := os.Stat("dynamic_aliases.yaml"); err == nil {
		t.Error("failed refresh must not write a file")
	}
}

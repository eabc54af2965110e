package entity

import (
	"strings"
	"testing"
)

func TestNewAliasTable_MergesLayers(t *testing.T) {
	static := []AliasEntry{
		{Surface: "台積", Ticker: "2330", Name: "台積電"},
		{Surface: "鴻海", Ticker: "2317", Name: "鴻海"},
	}
	dynamic := []AliasEntry{
		{Surface: "股王", Ticker: "3008", Name: "大立光"},
	}

	table, err := NewAliasTable(static, dynamic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", table.Len())
	}
	if e, ok := table.Lookup("股王"); !ok || e.Ticker != "3008" {
		t.Errorf("expected dynamic entry 股王 → 3008, got %+v (ok=%v)", e, ok)
	}
}

func TestNewAliasTable_DynamicOverridesStatic(t *testing.T) {
	static := []AliasEntry{{Surface: "股王", Ticker: "3008", Name: "大立光"}}
	dynamic := []AliasEntry{{Surface: "股王", Ticker: "2330", Name: "台積電"}}

	table, err := NewAliasTable(static, dynamic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, ok := table.Lookup("股王")
	if !ok || e.Ticker != "2330" {
		t.Errorf("expected dynamic layer to win, got %+v", e)
	}
}

func TestNewAliasTable_ShortSurfacesNeverOverridden(t *testing.T) {
	static := []AliasEntry{{Surface: "gg", Ticker: "2330", Name: "台積電"}}
	dynamic := []AliasEntry{
		{Surface: "gg", Ticker: "9999", Name: "噪音"},
		{Surface: "tt", Ticker: "1234", Name: "新增"},
	}

	table, err := NewAliasTable(static, dynamic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e, _ := table.Lookup("gg"); e.Ticker != "2330" {
		t.Errorf("curated short alias was overridden: got %q", e.Ticker)
	}
	// adding a new short surface is still allowed
	if _, ok := table.Lookup("tt"); !ok {
		t.Error("dynamic layer should be able to add new short surfaces")
	}
}

func TestNewAliasTable_CaseNormalized(t *testing.T) {
	table, err := NewAliasTable([]AliasEntry{{Surface: "Su Bae", Ticker: "AMD", Name: "AMD"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Lookup("su bae"); !ok {
		t.Error("expected surface to be case-normalized on construction")
	}
}

func TestNewAliasTable_RejectsMalformedEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry AliasEntry
	}{
		{"empty surface", AliasEntry{Surface: "  ", Ticker: "2330"}},
		{"empty ticker", AliasEntry{Surface: "台積", Ticker: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAliasTable([]AliasEntry{tc.entry}, nil); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}

func TestNewAliasTable_RejectsDuplicateWithinLayer(t *testing.T) {
	static := []AliasEntry{
		{Surface: "台積", Ticker: "2330"},
		{Surface: "台積", Ticker: "2317"},
	}
	if _, err := NewAliasTable(static, nil); err == nil {
		t.Error("expected duplicate surface to be rejected")
	}
}

func TestParseAliasYAML(t *testing.T) {
	data := []byte("_updated_at: [\"meta\", \"meta\"]\n台積: [\"2330\", \"台積電\"]\ngg: [\"2330\", \"台積電\"]\n")

	entries, err := ParseAliasYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (metadata skipped), got %d", len(entries))
	}
	for _, e := range entries {
		if e.Ticker != "2330" {
			t.Errorf("entry %q: expected ticker 2330, got %q", e.Surface, e.Ticker)
		}
	}
}

func TestParseAliasYAML_MalformedPair(t *testing.T) {
	_, err := ParseAliasYAML([]byte("台積: [\"2330\"]\n"))
	if err == nil {
		t.Fatal("expected error for one-element pair")
	}
	if !strings.Contains(err.Error(), "台積") {
		t.Errorf("error should name the offending alias, got: %v", err)
	}
}

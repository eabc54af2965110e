// Package store persists run state and renders reports. The buzz
// history lives in a plain JSON file: small, diffable and trivially
// inspectable when a score looks off.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkuo/stockpulse/internal/buzz"
)

// LoadHistory reads a buzz history file. A missing file is an empty
// history: first run, nothing observed yet.
func LoadHistory(path string) (buzz.History, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return buzz.History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var h buzz.History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	if h == nil {
		h = buzz.History{}
	}
	return h, nil
}

// SaveHistory writes the history atomically, creating parent
// directories as needed. A crashed run leaves the previous file intact.
func SaveHistory(path string, h buzz.History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// Package cache provides the fetch layer's response cache: a memory
// layer for hot pages within one run, backed by a disk layer so repeated
// scheduler runs don't rehit the forum for unchanged pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the common interface of all cache layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a fetched URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "stockpulse:v1:" + hex.EncodeToString(sum[:])
}

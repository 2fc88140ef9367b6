// Package cache stores profile lookups between runs. A memory layer backed
// by go-cache sits in front of JSON files on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const keyPrefix = "adscout:v1:"

// Cache is a byte-oriented key/value store with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced key. The id is lowercased before hashing so
// usernames differing only in case share an entry.
func Key(namespace, id string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(id))))
	return keyPrefix + namespace + ":" + hex.EncodeToString(hash[:16])
}

// GetJSON decodes a cached value into v. A corrupt entry counts as a miss.
func GetJSON(c Cache, key string, v any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(key)
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key
func SetJSON(c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return c.Set(key, data, ttl)
}

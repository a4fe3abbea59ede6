package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// DefaultTTL bounds how long a source text stays cached within one run
	DefaultTTL = 10 * time.Minute
	// DefaultCleanup is the expired-entry sweep interval
	DefaultCleanup = 15 * time.Minute
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from an absolute file path
func CacheKey(path string) string {
	hash := sha256.Sum256([]byte(path))
	return "refdocs:v1:" + hex.EncodeToString(hash[:])
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching extracted articles
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "truthscope:v1:" + hex.EncodeToString(hash[:])
}

// Package cache provides short-lived response caching for read-only
// display endpoints. The analyze path never goes through it.
package cache

import (
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ListKey builds the cache key for a recent-claims listing.
func ListKey(limit int) string {
	return fmt.Sprintf("factspark:v1:claims:recent:%d", limit)
}

package cache

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/coocood/freecache"
)

var _ Cache = (*StatsCache)(nil)

const (
	defaultStatsCacheSize   = 10 * 1024 * 1024
	defaultStatsCacheExpire = 5 * 60 // seconds
)

// StatsCache stores stats responses in freecache. Keys carry a per user
// version, so invalidation only bumps the version and old entries age out.
type StatsCache struct {
	cache         *freecache.Cache
	expireSeconds int

	mu       sync.Mutex
	versions map[string]uint64
}

func NewStatsCache(sizeBytes, expireSeconds int) *StatsCache {
	if sizeBytes <= 0 {
		sizeBytes = defaultStatsCacheSize
	}
	if expireSeconds <= 0 {
		expireSeconds = defaultStatsCacheExpire
	}
	return &StatsCache{
		cache:         freecache.NewCache(sizeBytes),
		expireSeconds: expireSeconds,
		versions:      map[string]uint64{},
	}
}

func (c *StatsCache) version(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID]
}

func (c *StatsCache) key(userID, key string) []byte {
	return []byte(fmt.Sprintf("%s|%s|%s", userID, strconv.FormatUint(c.version(userID), 10), key))
}

func (c *StatsCache) Get(userID, key string) ([]byte, bool) {
	value, err := c.cache.Get(c.key(userID, key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *StatsCache) Set(userID, key string, value []byte) error {
	return c.cache.Set(c.key(userID, key), value, c.expireSeconds)
}

func (c *StatsCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
}

func (c *StatsCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

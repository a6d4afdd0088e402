// Package cache is the two-layer summary cache: an in-process map in front
// of durable storage. Entries never auto-expire; forced regeneration is the
// only invalidation path.
package cache

import (
	"log/slog"
	"sync"

	"pagebrief/models"
)

// DurableStore is the persistence behind the in-process layer.
type DurableStore interface {
	GetSummary(key string) (models.SummaryResult, bool, error)
	PutSummary(key string, result models.SummaryResult) error
}

type Cache struct {
	mu      sync.Mutex
	mem     map[string]models.SummaryResult
	durable DurableStore
	logger  *slog.Logger
}

// New builds a cache over durable storage. A nil durable store leaves the
// cache purely in-process.
func New(durable DurableStore, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		mem:     make(map[string]models.SummaryResult),
		durable: durable,
		logger:  logger,
	}
}

// Get checks the in-process layer first, then durable storage, promoting
// durable hits into memory. Ad-hoc keys only ever live in memory.
func (c *Cache) Get(key models.CacheKey) (models.SummaryResult, bool) {
	c.mu.Lock()
	if result, ok := c.mem[key.Key]; ok {
		c.mu.Unlock()
		return result, true
	}
	c.mu.Unlock()

	if key.AdHoc || c.durable == nil {
		return models.SummaryResult{}, false
	}

	result, ok, err := c.durable.GetSummary(key.Key)
	if err != nil {
		c.logger.Warn("durable cache read failed", "key", key.Key, "error", err)
		return models.SummaryResult{}, false
	}
	if !ok {
		return models.SummaryResult{}, false
	}

	c.mu.Lock()
	c.mem[key.Key] = result
	c.mu.Unlock()
	return result, true
}

// Put writes to both layers. Ad-hoc keys stay transient: memory only, never
// durable storage. A durable write failure degrades to memory-only caching.
func (c *Cache) Put(key models.CacheKey, result models.SummaryResult) {
	c.mu.Lock()
	c.mem[key.Key] = result
	c.mu.Unlock()

	if key.AdHoc || c.durable == nil {
		return
	}
	if err := c.durable.PutSummary(key.Key, result); err != nil {
		c.logger.Warn("durable cache write failed", "key", key.Key, "error", err)
	}
}

// Forget drops a key from the in-process layer. Used when a forced refresh
// supersedes an entry mid-flight.
func (c *Cache) Forget(key models.CacheKey) {
	c.mu.Lock()
	delete(c.mem, key.Key)
	c.mu.Unlock()
}

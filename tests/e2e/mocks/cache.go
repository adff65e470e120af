package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TrackingCache is an in-memory cache that stores values as JSON, the way the
// redis cache does, and counts its calls.
type TrackingCache struct {
	mu       sync.Mutex
	data     map[string]CacheEntry
	GetCalls int
	SetCalls int
	Deleted  []string
}

type CacheEntry struct {
	Value  []byte
	Expiry time.Time
}

func NewTrackingCache() *TrackingCache {
	return &TrackingCache{
		data: make(map[string]CacheEntry),
	}
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.GetCalls++
	entry, exists := c.data[key]
	if !exists || time.Now().After(entry.Expiry) {
		return redis.Nil
	}
	return json.Unmarshal(entry.Value, dest)
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.SetCalls++
	c.data[key] = CacheEntry{
		Value:  b,
		Expiry: time.Now().Add(exp),
	}
	return nil
}

func (c *TrackingCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.data, k)
	}
	c.Deleted = append(c.Deleted, keys...)
	return nil
}

// Has reports whether key holds an unexpired entry.
func (c *TrackingCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[key]
	return exists && time.Now().Before(entry.Expiry)
}

// DeletedKeys returns every key passed to Delete, in call order.
func (c *TrackingCache) DeletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Deleted...)
}

// Stats returns the Get and Set call counts.
func (c *TrackingCache) Stats() (gets, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.GetCalls, c.SetCalls
}

func (c *TrackingCache) Close() error {
	return nil
}

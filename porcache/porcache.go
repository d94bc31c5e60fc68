// Package porcache provides an optional Redis-backed cache in front of the
// two repeatedly-hit collaborators interpret() leans on: the index's scored
// search and the slicer's match-exists check. It is adapted from teacher's
// deleted pkg/cache (Cache/CacheManager, GetOrSet, JSON helpers,
// ErrCacheMiss sentinel), generalized from flight/airport keys to POR
// search keys.
package porcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gilby125/por-search/por"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/slicer"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("porcache: cache miss")

// Cache is the low-level byte-oriented cache contract, implemented by
// RedisCache and fakeable in tests.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// RedisCache implements Cache using go-redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache builds a RedisCache namespaced under prefix.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) prefixKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefixKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("porcache: redis get: %w", err)
	}
	return []byte(val), nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefixKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("porcache: redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefixKey(key)).Err(); err != nil {
		return fmt.Errorf("porcache: redis delete: %w", err)
	}
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	pattern := c.prefixKey("*")
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("porcache: redis clear: %w", err)
		}
	}
	return iter.Err()
}

// Manager provides JSON-level caching operations over a Cache.
type Manager struct {
	cache Cache
}

// NewManager builds a Manager over cache.
func NewManager(cache Cache) *Manager {
	return &Manager{cache: cache}
}

// GetJSON retrieves and unmarshals JSON data from the cache.
func (m *Manager) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := m.cache.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON marshals and stores value under key with ttl.
func (m *Manager) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("porcache: marshal: %w", err)
	}
	return m.cache.Set(ctx, key, data, ttl)
}

// Cache key generators and TTL policy, the POR-search equivalents of
// teacher's AirportsKey/FlightSearchKey and Short/Medium/LongTTL.
const (
	ShortTTL  = 5 * time.Minute
	MediumTTL = 1 * time.Hour
)

// ScoredSearchKey is the cache key for one SearchScored phrase lookup.
func ScoredSearchKey(phrase string) string {
	return fmt.Sprintf("search:%s", phrase)
}

// MatchExistsKey is the cache key for one match-exists check.
func MatchExistsKey(phrase string) string {
	return fmt.Sprintf("match_exists:%s", phrase)
}

// ScoredSearcher is the subset of porindex.Index that CachedSearcher wraps.
type ScoredSearcher interface {
	SearchScored(phrase string) ([]porindex.ScoredDoc, error)
}

// CachedSearcher decorates a ScoredSearcher with a read-through cache over
// SearchScored, the hottest call in interpret()'s match loop.
type CachedSearcher struct {
	next  ScoredSearcher
	cache *Manager
	ttl   time.Duration
}

// NewCachedSearcher builds a CachedSearcher over next.
func NewCachedSearcher(next ScoredSearcher, cache *Manager, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{next: next, cache: cache, ttl: ttl}
}

// SearchScored satisfies ScoredSearcher, populating the cache on miss.
func (c *CachedSearcher) SearchScored(phrase string) ([]porindex.ScoredDoc, error) {
	ctx := context.Background()
	key := ScoredSearchKey(phrase)

	var cached []porindex.ScoredDoc
	if err := c.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, fmt.Errorf("porcache: get scored search: %w", err)
	}

	docs, err := c.next.SearchScored(phrase)
	if err != nil {
		return nil, err
	}
	_ = c.cache.SetJSON(ctx, key, docs, c.ttl)
	return docs, nil
}

// CachedMatchChecker decorates a slicer.MatchChecker with a read-through
// cache over MatchExists, so repeated adjacent-token checks across queries
// sharing common sub-phrases skip the index.
type CachedMatchChecker struct {
	next  slicer.MatchChecker
	cache *Manager
	ttl   time.Duration
}

// NewCachedMatchChecker builds a CachedMatchChecker over next.
func NewCachedMatchChecker(next slicer.MatchChecker, cache *Manager, ttl time.Duration) *CachedMatchChecker {
	return &CachedMatchChecker{next: next, cache: cache, ttl: ttl}
}

// MatchExists satisfies slicer.MatchChecker, populating the cache on miss.
func (c *CachedMatchChecker) MatchExists(phrase string) (bool, error) {
	ctx := context.Background()
	key := MatchExistsKey(phrase)

	var cached bool
	if err := c.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return false, fmt.Errorf("porcache: get match exists: %w", err)
	}

	exists, err := c.next.MatchExists(phrase)
	if err != nil {
		return false, err
	}
	_ = c.cache.SetJSON(ctx, key, exists, c.ttl)
	return exists, nil
}

// FullIndex is the porindex.Index surface CachedIndex needs to pass through
// uncached (SpellingTerms and CodeExists are read rarely compared to
// SearchScored/MatchExists, so teacher's narrower Cache wrapping is
// preferable to caching every call).
type FullIndex interface {
	ScoredSearcher
	SpellingTerms() ([]string, error)
	MatchExists(phrase string) (bool, error)
	CodeExists(code string) (por.Record, bool, error)
}

// CachedIndex decorates a FullIndex (*porindex.Index in production) with
// read-through caching over its two hottest calls, while satisfying the
// same interpreter.Index contract the uncached index does, so the
// interpreter can be handed either one interchangeably.
type CachedIndex struct {
	FullIndex
	searcher      *CachedSearcher
	matchChecker  *CachedMatchChecker
}

// NewCachedIndex builds a CachedIndex over next, caching SearchScored under
// searchTTL and MatchExists under matchTTL.
func NewCachedIndex(next FullIndex, cache *Manager, searchTTL, matchTTL time.Duration) *CachedIndex {
	return &CachedIndex{
		FullIndex:    next,
		searcher:     NewCachedSearcher(next, cache, searchTTL),
		matchChecker: NewCachedMatchChecker(matchCheckerAdapter{next}, cache, matchTTL),
	}
}

// SearchScored overrides FullIndex's embedded method with the cached path.
func (c *CachedIndex) SearchScored(phrase string) ([]porindex.ScoredDoc, error) {
	return c.searcher.SearchScored(phrase)
}

// MatchExists overrides FullIndex's embedded method with the cached path.
func (c *CachedIndex) MatchExists(phrase string) (bool, error) {
	return c.matchChecker.MatchExists(phrase)
}

// matchCheckerAdapter narrows a FullIndex down to slicer.MatchChecker for
// NewCachedMatchChecker, which only knows about that interface.
type matchCheckerAdapter struct {
	FullIndex
}

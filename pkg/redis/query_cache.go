package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// QueryCache caches JSON-encoded list results per resource. Every resource has a
// version counter that is part of the key; bumping it orphans all older entries,
// which then expire on their own TTL.
type QueryCache struct {
	prefix string
	ttl    time.Duration
}

var (
	getCacheValue = Get
	setCacheValue = Set
	incrCacheKey  = Incr
)

// NewQueryCache returns a cache storing entries for ttl. A zero ttl disables it.
func NewQueryCache(prefix string, ttl time.Duration) *QueryCache {
	if prefix == "" {
		prefix = "cache"
	}
	return &QueryCache{prefix: prefix, ttl: ttl}
}

// Enabled reports whether lookups can hit Redis at all.
func (c *QueryCache) Enabled() bool {
	return c != nil && c.ttl > 0 && Enabled()
}

func (c *QueryCache) versionKey(resource string) string {
	return fmt.Sprintf("%s:%s:version", c.prefix, resource)
}

func (c *QueryCache) version(ctx context.Context, resource string) (string, error) {
	v, err := getCacheValue(ctx, c.versionKey(resource))
	if errors.Is(err, Nil) {
		return "0", nil
	}
	return v, err
}

// Key derives the entry key for resource and an arbitrary query value.
func (c *QueryCache) Key(ctx context.Context, resource string, query interface{}) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	ver, err := c.version(ctx, resource)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%s:v%s:%s", c.prefix, resource, ver, hex.EncodeToString(sum[:12])), nil
}

// Load looks up the entry for resource and query and decodes it into dst. It
// returns the versioned key it read; on a miss the caller stores the fresh
// value with StoreAt under that key, so a result read while a write bumped the
// version lands under the old version and is never served. The key is empty
// when the cache is disabled or the version could not be read.
func (c *QueryCache) Load(ctx context.Context, resource string, query, dst interface{}) (string, bool, error) {
	if !c.Enabled() {
		return "", false, nil
	}
	key, err := c.Key(ctx, resource, query)
	if err != nil {
		return "", false, err
	}
	raw, err := getCacheValue(ctx, key)
	if errors.Is(err, Nil) {
		return key, false, nil
	}
	if err != nil {
		return key, false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return key, false, err
	}
	return key, true, nil
}

// StoreAt writes value under a key returned by Load. An empty key is a no-op.
func (c *QueryCache) StoreAt(ctx context.Context, key string, value interface{}) error {
	if key == "" || !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return setCacheValue(ctx, key, raw, c.ttl)
}

// Invalidate bumps the resource version and returns the new value.
func (c *QueryCache) Invalidate(ctx context.Context, resource string) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	v, err := incrCacheKey(ctx, c.versionKey(resource))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

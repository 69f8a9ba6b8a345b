// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/games/usecase"
)

// CachingGameRepository decorates a GameRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Every catalog write invalidates the
// whole namespace.
type CachingGameRepository struct {
	inner     usecase.GameRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingGameRepositoryがGameRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.GameRepository = (*CachingGameRepository)(nil)

// NewCachingGameRepository decorates a GameRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "games".
func NewCachingGameRepository(rdb *redis.Client, ttl time.Duration, inner usecase.GameRepository, namespace string) *CachingGameRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "games"
	}
	return &CachingGameRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a game and invalidates the catalog cache.
func (c *CachingGameRepository) Create(ctx context.Context, game *entity.Game) error {
	if err := c.inner.Create(ctx, game); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// List retrieves all games, checking cache first then falling back to the database.
func (c *CachingGameRepository) List(ctx context.Context) ([]entity.Game, error) {
	return c.readThroughSlice(ctx, c.key("list"), func() ([]entity.Game, error) {
		return c.inner.List(ctx)
	})
}

// FindByID retrieves one game, checking cache first then falling back to the database.
func (c *CachingGameRepository) FindByID(ctx context.Context, id uint) (*entity.Game, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.key(fmt.Sprintf("id:%d", id))

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Game
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Filter retrieves filtered games through the cache.
func (c *CachingGameRepository) Filter(ctx context.Context, f usecase.Filter) ([]entity.Game, error) {
	key := c.key(fmt.Sprintf("filter:%s:%s:%s:%d",
		safe(f.Genre), safe(f.Platform), safe(f.Developer), f.ReleaseYear))
	return c.readThroughSlice(ctx, key, func() ([]entity.Game, error) {
		return c.inner.Filter(ctx, f)
	})
}

// Search retrieves search results through the cache.
func (c *CachingGameRepository) Search(ctx context.Context, term string) ([]entity.Game, error) {
	key := c.key("search:" + safe(strings.ToLower(term)))
	return c.readThroughSlice(ctx, key, func() ([]entity.Game, error) {
		return c.inner.Search(ctx, term)
	})
}

// Update saves a game and invalidates the catalog cache.
func (c *CachingGameRepository) Update(ctx context.Context, game *entity.Game) error {
	if err := c.inner.Update(ctx, game); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a game and invalidates the catalog cache.
func (c *CachingGameRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DeleteByTitle removes a game by title and invalidates the catalog cache.
func (c *CachingGameRepository) DeleteByTitle(ctx context.Context, title string) error {
	if err := c.inner.DeleteByTitle(ctx, title); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// readThroughSlice serves a slice-valued query from cache when possible.
func (c *CachingGameRepository) readThroughSlice(ctx context.Context, key string, load func() ([]entity.Game, error)) ([]entity.Game, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Game
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate drops every cache entry in the namespace. Best effort: a write
// must never fail because cache cleanup failed.
func (c *CachingGameRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// key generates a namespaced cache key.
func (c *CachingGameRepository) key(suffix string) string {
	return c.namespace + ":" + suffix
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingGameRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

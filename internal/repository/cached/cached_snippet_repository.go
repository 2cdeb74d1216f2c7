// Package cached provides a caching wrapper over a primary repository using Redis.
package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"snipstash/internal/domain"
	"snipstash/internal/repository"
)

const listKeyPrefix = "snippets:list"

func listKey(search string) string {
	if search == "" {
		return listKeyPrefix
	}
	return listKeyPrefix + ":q:" + search
}

// SnippetRepository is a cache-aside repository combining Redis with a primary store.
// List results are cached per search term; every write busts the list keys.
type SnippetRepository struct {
	primary repository.SnippetRepository
	redis   *redis.Client
	ttl     time.Duration
}

// NewSnippetRepository creates a new cached repository.
func NewSnippetRepository(primary repository.SnippetRepository, redis *redis.Client, ttl time.Duration) *SnippetRepository {
	return &SnippetRepository{primary: primary, redis: redis, ttl: ttl}
}

// Create writes through to the primary and invalidates list caches.
func (r *SnippetRepository) Create(ctx context.Context, s domain.Snippet) (domain.Snippet, error) {
	created, err := r.primary.Create(ctx, s)
	if err != nil {
		return domain.Snippet{}, err
	}
	_ = r.invalidateListKeys(ctx)
	return created, nil
}

// List attempts Redis then falls back to the primary, filling the cache.
func (r *SnippetRepository) List(ctx context.Context, search string) ([]domain.Snippet, error) {
	k := listKey(search)
	if val, err := r.redis.Get(ctx, k).Result(); err == nil && val != "" {
		var items []domain.Snippet
		if jsonErr := json.Unmarshal([]byte(val), &items); jsonErr == nil {
			return items, nil
		}
	}
	items, err := r.primary.List(ctx, search)
	if err != nil {
		return nil, err
	}
	data, _ := json.Marshal(items)
	_ = r.redis.Set(ctx, k, data, r.ttl).Err()
	return items, nil
}

// Delete writes through to the primary and invalidates list caches when a row
// actually went away.
func (r *SnippetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	found, err := r.primary.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if found {
		_ = r.invalidateListKeys(ctx)
	}
	return found, nil
}

func (r *SnippetRepository) invalidateListKeys(ctx context.Context) error {
	// scan-and-delete keys under the list prefix, best effort
	var cursor uint64
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			_ = r.redis.Del(ctx, keys...).Err()
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return nil
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)

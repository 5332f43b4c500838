package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/pkg/logger"
)

// CatalogCache caches the active-module catalog per publication. Failures
// are logged and treated as misses; the catalog service always has the
// database to fall back on.
type CatalogCache struct {
	client *RedisClient
	ttl    time.Duration
}

func NewCatalogCache(client *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func catalogKey(publicationID uuid.UUID) string {
	return fmt.Sprintf("catalog:modules:%s", publicationID)
}

func (c *CatalogCache) Get(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, bool) {
	raw, err := c.client.Get(ctx, catalogKey(publicationID))
	if err != nil {
		if !IsNil(err) {
			logger.CacheError("catalog_get", "Catalog cache read failed", err, map[string]interface{}{"publication_id": publicationID.String()})
		}
		return nil, false
	}

	var modules []models.NewsletterModule
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		logger.CacheError("catalog_decode", "Catalog cache entry corrupt, dropping", err, nil)
		_ = c.client.Del(ctx, catalogKey(publicationID))
		return nil, false
	}

	return modules, true
}

func (c *CatalogCache) Set(ctx context.Context, publicationID uuid.UUID, modules []models.NewsletterModule) {
	raw, err := json.Marshal(modules)
	if err != nil {
		logger.CacheError("catalog_encode", "Catalog cache encode failed", err, nil)
		return
	}

	if err := c.client.Set(ctx, catalogKey(publicationID), string(raw), c.ttl); err != nil {
		logger.CacheError("catalog_set", "Catalog cache write failed", err, map[string]interface{}{"publication_id": publicationID.String()})
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context, publicationID uuid.UUID) {
	if err := c.client.Del(ctx, catalogKey(publicationID)); err != nil {
		logger.CacheError("catalog_invalidate", "Catalog cache invalidation failed", err, map[string]interface{}{"publication_id": publicationID.String()})
	}
}

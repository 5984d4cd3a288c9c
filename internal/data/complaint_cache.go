package data

import (
	"context"
	"encoding/json"
	"time"

	"complaint-service/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	complaintCachePrefix = "complaint:"
	complaintCacheTTL    = 10 * time.Minute
)

// ComplaintCache defines the interface for complaint caching operations.
// Implementations should handle cache misses gracefully by returning nil, nil.
type ComplaintCache interface {
	// Get retrieves a complaint from cache by its ID.
	// Returns nil, nil if the complaint is not in cache (cache miss).
	Get(ctx context.Context, id string) (*domain.Complaint, error)

	// Set stores a complaint in the cache.
	Set(ctx context.Context, c *domain.Complaint) error

	// Invalidate removes a complaint from the cache.
	Invalidate(ctx context.Context, id string) error
}

// Compile-time interface checks
var (
	_ ComplaintCache = (*RedisComplaintCache)(nil)
	_ ComplaintCache = (*noopComplaintCache)(nil)
)

// RedisComplaintCache implements ComplaintCache using Redis.
type RedisComplaintCache struct {
	rdb *redis.Client
	log *log.Helper
}

// NewRedisComplaintCache creates a new Redis-based complaint cache.
// Returns a no-op cache if Redis is not configured.
func NewRedisComplaintCache(data *Data, logger log.Logger) ComplaintCache {
	if data.rdb == nil {
		return &noopComplaintCache{}
	}
	return &RedisComplaintCache{
		rdb: data.rdb,
		log: log.NewHelper(logger),
	}
}

// cachedComplaint is the serialization format for cached complaints.
type cachedComplaint struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	ComplainantID string     `json:"complainant_id"`
	Content       string     `json:"content"`
	Country       string     `json:"country"`
	Counter       int        `json:"counter"`
	CreationDate  time.Time  `json:"creation_date"`
	UpdateDate    *time.Time `json:"update_date,omitempty"`
}

func (c *RedisComplaintCache) cacheKey(id string) string {
	return complaintCachePrefix + id
}

// Get retrieves a complaint from Redis cache.
func (c *RedisComplaintCache) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	data, err := c.rdb.Get(ctx, c.cacheKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		c.log.WithContext(ctx).Warnf("failed to get complaint from cache: %v", err)
		return nil, nil // Treat errors as cache miss
	}

	var cached cachedComplaint
	if err := json.Unmarshal(data, &cached); err != nil {
		c.log.WithContext(ctx).Warnf("failed to unmarshal cached complaint: %v", err)
		return nil, nil
	}

	return domain.ReconstructComplaint(
		cached.ID,
		cached.ProductID,
		cached.ComplainantID,
		cached.Content,
		cached.Country,
		cached.Counter,
		cached.CreationDate,
		cached.UpdateDate,
	), nil
}

// Set stores a complaint in Redis cache.
func (c *RedisComplaintCache) Set(ctx context.Context, cm *domain.Complaint) error {
	cached := cachedComplaint{
		ID:            cm.ID,
		ProductID:     cm.ProductID,
		ComplainantID: cm.ComplainantID,
		Content:       cm.Content,
		Country:       cm.Country,
		Counter:       cm.Counter,
		CreationDate:  cm.CreationDate,
		UpdateDate:    cm.UpdateDate,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		c.log.WithContext(ctx).Warnf("failed to marshal complaint for cache: %v", err)
		return nil // Don't fail the operation due to cache errors
	}

	if err := c.rdb.Set(ctx, c.cacheKey(cm.ID), data, complaintCacheTTL).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("failed to cache complaint: %v", err)
	}

	return nil
}

// Invalidate removes a complaint from Redis cache.
func (c *RedisComplaintCache) Invalidate(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("failed to invalidate complaint cache: %v", err)
	}
	return nil
}

// noopComplaintCache is a no-op implementation when Redis is not available.
type noopComplaintCache struct{}

func (c *noopComplaintCache) Get(context.Context, string) (*domain.Complaint, error) {
	return nil, nil
}

func (c *noopComplaintCache) Set(context.Context, *domain.Complaint) error {
	return nil
}

func (c *noopComplaintCache) Invalidate(context.Context, string) error {
	return nil
}

package data

import (
	"context"

	"complaint-service/internal/domain"
)

// Compile-time interface check
var _ domain.ComplaintRepository = (*CachedComplaintRepository)(nil)

// CachedComplaintRepository wraps a ComplaintRepo with caching capabilities.
// It implements the decorator pattern to add caching without modifying the
// underlying repository.
type CachedComplaintRepository struct {
	repo  *ComplaintRepo
	cache ComplaintCache
}

// NewCachedComplaintRepository creates a new cached repository wrapper.
func NewCachedComplaintRepository(repo *ComplaintRepo, cache ComplaintCache) domain.ComplaintRepository {
	return &CachedComplaintRepository{
		repo:  repo,
		cache: cache,
	}
}

// Save persists a complaint and updates the cache.
func (r *CachedComplaintRepository) Save(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	saved, err := r.repo.Save(ctx, c)
	if err != nil {
		return nil, err
	}

	// Cache after successful save
	_ = r.cache.Set(ctx, saved)
	return saved, nil
}

// FindByID retrieves a complaint, checking cache first.
func (r *CachedComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	c, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, c)
	return c, nil
}

// FindByProductAndComplainant retrieves the complaint for a dedup key.
// Not cached: the lookup feeds the create path, which must observe the store
// to keep the uniqueness race window as small as possible.
func (r *CachedComplaintRepository) FindByProductAndComplainant(ctx context.Context, productID, complainantID string) (*domain.Complaint, error) {
	return r.repo.FindByProductAndComplainant(ctx, productID, complainantID)
}

// FindByFilters retrieves complaints matching the filters.
// Not cached: paginated scans are unbounded in shape.
func (r *CachedComplaintRepository) FindByFilters(ctx context.Context, f domain.ComplaintFilter) ([]*domain.Complaint, error) {
	return r.repo.FindByFilters(ctx, f)
}

// IncrementCounter bumps the counter and refreshes the cache entry.
func (r *CachedComplaintRepository) IncrementCounter(ctx context.Context, id string) (*domain.Complaint, error) {
	_ = r.cache.Invalidate(ctx, id)

	c, err := r.repo.IncrementCounter(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, c)
	return c, nil
}

package domain

import (
	"context"
	"time"
)

// ComplaintFilter describes an optional-conjunction query over complaints.
// Omitted fields (zero values) impose no constraint; date bounds are
// inclusive against CreationDate. Page is zero-based, skip = Page * Size.
type ComplaintFilter struct {
	ProductID     string
	ComplainantID string
	FromDate      *time.Time
	ToDate        *time.Time
	Page          int
	Size          int
}

// ComplaintRepository defines persistence operations for complaints.
// The interface lives in the domain layer and is implemented in the data
// layer, following the Dependency Inversion Principle.
type ComplaintRepository interface {
	// Save persists a complaint. A complaint without an ID is inserted and
	// assigned one; saving a first-time complaint that loses the uniqueness
	// race returns ErrDuplicateComplaint.
	Save(ctx context.Context, c *Complaint) (*Complaint, error)

	// FindByID retrieves a complaint by its identifier.
	// Returns ErrComplaintNotFound if absent.
	FindByID(ctx context.Context, id string) (*Complaint, error)

	// FindByProductAndComplainant retrieves the complaint for a dedup key.
	// Returns ErrComplaintNotFound if absent.
	FindByProductAndComplainant(ctx context.Context, productID, complainantID string) (*Complaint, error)

	// FindByFilters retrieves complaints matching the conjunction of the
	// supplied filters, paginated. Ordering is the store's natural order.
	FindByFilters(ctx context.Context, filter ComplaintFilter) ([]*Complaint, error)

	// IncrementCounter atomically bumps the submission counter in the store
	// and returns the updated complaint. Returns ErrComplaintNotFound if the
	// id is unknown. Atomic update keeps the counter exact under concurrent
	// resubmissions.
	IncrementCounter(ctx context.Context, id string) (*Complaint, error)
}

package biz

import (
	"context"
	"errors"

	"complaint-service/internal/domain"
	"complaint-service/internal/domain/event"
	"complaint-service/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewComplaintUsecase)

// CountryResolver resolves an IP address to a country name. Implementations
// never fail: unresolvable addresses yield the Unknown sentinel.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, ipAddress string) string
}

// ComplaintUsecase orchestrates the complaint lifecycle: create with
// deduplication, content update with conditional re-enrichment, point
// lookup, and filtered listing.
type ComplaintUsecase struct {
	repo domain.ComplaintRepository
	geo  CountryResolver
	bus  *eventbus.EventBus // may be nil
	log  *log.Helper
}

// NewComplaintUsecase creates a new complaint usecase.
func NewComplaintUsecase(repo domain.ComplaintRepository, geo CountryResolver, bus *eventbus.EventBus, logger log.Logger) *ComplaintUsecase {
	return &ComplaintUsecase{
		repo: repo,
		geo:  geo,
		bus:  bus,
		log:  log.NewHelper(logger),
	}
}

// CreateComplaint records a submission. The first submission for a
// (product, complainant) pair stores a new record enriched with the
// submitter's country; every later submission for the same pair bumps the
// counter and leaves content and country untouched. Two concurrent
// first-time submissions collapse into one record with counter 2: the loser
// of the store-level uniqueness race falls back to the increment path.
func (uc *ComplaintUsecase) CreateComplaint(ctx context.Context, productID, content, complainantID, ipAddress string) (*domain.Complaint, error) {
	uc.log.WithContext(ctx).Debugf("creating complaint for product ID: %s from complainant ID: %s", productID, complainantID)

	existing, err := uc.repo.FindByProductAndComplainant(ctx, productID, complainantID)
	if err == nil {
		return uc.incrementCounter(ctx, existing)
	}
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		return nil, err
	}

	country := uc.geo.ResolveCountry(ctx, ipAddress)
	complaint := domain.NewComplaint(productID, content, complainantID, country)

	saved, err := uc.repo.Save(ctx, complaint)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateComplaint) {
			// A concurrent writer won the race between the lookup above and
			// this save. The winner's record carries the submission.
			uc.log.WithContext(ctx).Debugf("duplicate key on first save, incrementing existing complaint")
			winner, ferr := uc.repo.FindByProductAndComplainant(ctx, productID, complainantID)
			if ferr != nil {
				return nil, ferr
			}
			return uc.incrementCounter(ctx, winner)
		}
		return nil, err
	}

	uc.publishEvents(ctx, saved)
	return saved, nil
}

// UpdateComplaintContent replaces a complaint's content and stamps the
// update time. If the stored country is still the Unknown sentinel the
// submitter's country is re-resolved; a known country is never re-resolved
// and never downgraded.
func (uc *ComplaintUsecase) UpdateComplaintContent(ctx context.Context, id, content, ipAddress string) (*domain.Complaint, error) {
	uc.log.WithContext(ctx).Debugf("updating content for complaint ID: %s", id)

	complaint, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !complaint.CountryKnown() {
		if country := uc.geo.ResolveCountry(ctx, ipAddress); complaint.EnrichCountry(country) {
			uc.log.WithContext(ctx).Debugf("enriching complaint %s with country: %s", id, country)
		}
	}

	complaint.ApplyContentUpdate(content)

	updated, err := uc.repo.Save(ctx, complaint)
	if err != nil {
		return nil, err
	}

	uc.publishEvents(ctx, updated)
	return updated, nil
}

// GetComplaintByID retrieves a complaint by its identifier.
func (uc *ComplaintUsecase) GetComplaintByID(ctx context.Context, id string) (*domain.Complaint, error) {
	uc.log.WithContext(ctx).Debugf("getting complaint by ID: %s", id)
	return uc.repo.FindByID(ctx, id)
}

// ListComplaints retrieves complaints matching the filter conjunction.
func (uc *ComplaintUsecase) ListComplaints(ctx context.Context, filter domain.ComplaintFilter) ([]*domain.Complaint, error) {
	return uc.repo.FindByFilters(ctx, filter)
}

func (uc *ComplaintUsecase) incrementCounter(ctx context.Context, existing *domain.Complaint) (*domain.Complaint, error) {
	uc.log.WithContext(ctx).Debugf("complaint already exists, incrementing counter")

	existing.IncrementCounter()
	events := existing.Events()

	updated, err := uc.repo.IncrementCounter(ctx, existing.ID)
	if err != nil {
		return nil, err
	}

	uc.publishAll(ctx, events)
	return updated, nil
}

func (uc *ComplaintUsecase) publishEvents(ctx context.Context, c *domain.Complaint) {
	uc.publishAll(ctx, c.Events())
	c.ClearEvents()
}

// publishAll publishes best-effort: event delivery never fails a workflow.
func (uc *ComplaintUsecase) publishAll(ctx context.Context, events []event.Event) {
	if uc.bus == nil || len(events) == 0 {
		return
	}
	if err := uc.bus.PublishAll(ctx, events); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to publish complaint events: %v", err)
	}
}

package domain

import (
	"strings"
	"time"

	"complaint-service/internal/domain/event"
)

// UnknownCountry is the sentinel country value used when geolocation has not
// (yet) succeeded. Comparisons against it are case-insensitive.
const UnknownCountry = "Unknown"

// Complaint is the persisted record of a complainant's issue with a product.
// At most one Complaint exists per (ProductID, ComplainantID) pair; repeated
// submissions for the same pair bump Counter instead of creating new records.
type Complaint struct {
	ID            string
	ProductID     string
	ComplainantID string
	Content       string
	Country       string
	Counter       int
	CreationDate  time.Time
	UpdateDate    *time.Time

	// events holds domain events raised by this aggregate.
	events []event.Event
}

// NewComplaint creates a first-time complaint with counter 1.
// It raises a ComplaintCreated event.
func NewComplaint(productID, content, complainantID, country string) *Complaint {
	c := &Complaint{
		ProductID:     productID,
		ComplainantID: complainantID,
		Content:       content,
		Country:       country,
		Counter:       1,
		CreationDate:  time.Now().UTC(),
		events:        make([]event.Event, 0),
	}
	c.addEvent(event.NewComplaintCreated(productID, complainantID, country))
	return c
}

// ReconstructComplaint recreates a Complaint from persistence without raising
// events.
func ReconstructComplaint(
	id, productID, complainantID, content, country string,
	counter int,
	creationDate time.Time,
	updateDate *time.Time,
) *Complaint {
	return &Complaint{
		ID:            id,
		ProductID:     productID,
		ComplainantID: complainantID,
		Content:       content,
		Country:       country,
		Counter:       counter,
		CreationDate:  creationDate,
		UpdateDate:    updateDate,
	}
}

// IncrementCounter records a repeated submission for the same pair.
// Content and country are left untouched; only explicit updates change them.
func (c *Complaint) IncrementCounter() {
	c.Counter++
	c.addEvent(event.NewComplaintResubmitted(c.ProductID, c.ComplainantID, c.Counter))
}

// ApplyContentUpdate replaces the content and stamps UpdateDate.
func (c *Complaint) ApplyContentUpdate(content string) {
	now := time.Now().UTC()
	c.Content = content
	c.UpdateDate = &now
	c.addEvent(event.NewComplaintContentUpdated(c.ID, c.ProductID))
}

// EnrichCountry overwrites the stored country only when it is still the
// Unknown sentinel and the resolved value is not. A known country is never
// downgraded back to Unknown.
func (c *Complaint) EnrichCountry(country string) bool {
	if c.CountryKnown() {
		return false
	}
	if strings.EqualFold(country, UnknownCountry) {
		return false
	}
	c.Country = country
	return true
}

// CountryKnown reports whether the country has been resolved to a real value.
func (c *Complaint) CountryKnown() bool {
	return !strings.EqualFold(c.Country, UnknownCountry)
}

func (c *Complaint) addEvent(e event.Event) {
	c.events = append(c.events, e)
}

// Events returns all uncommitted domain events.
func (c *Complaint) Events() []event.Event {
	return c.events
}

// ClearEvents clears all domain events after they have been published.
func (c *Complaint) ClearEvents() {
	c.events = nil
}

package event

// Compile-time interface check
var _ Event = ComplaintResubmitted{}

// ComplaintResubmitted is raised when a duplicate submission for an existing
// (product, complainant) pair bumps the counter.
type ComplaintResubmitted struct {
	Base
	ProductID     string `json:"product_id"`
	ComplainantID string `json:"complainant_id"`
	Counter       int    `json:"counter"`
}

// NewComplaintResubmitted creates a new ComplaintResubmitted event.
func NewComplaintResubmitted(productID, complainantID string, counter int) ComplaintResubmitted {
	return ComplaintResubmitted{
		Base:          NewBase(DedupKey(productID, complainantID)),
		ProductID:     productID,
		ComplainantID: complainantID,
		Counter:       counter,
	}
}

// EventName returns the event name.
func (e ComplaintResubmitted) EventName() string {
	return "complaint.resubmitted"
}

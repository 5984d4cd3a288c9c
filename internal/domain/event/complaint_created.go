package event

// Compile-time interface check
var _ Event = ComplaintCreated{}

// ComplaintCreated is raised when a first-time complaint is recorded.
type ComplaintCreated struct {
	Base
	ProductID     string `json:"product_id"`
	ComplainantID string `json:"complainant_id"`
	Country       string `json:"country"`
}

// NewComplaintCreated creates a new ComplaintCreated event.
func NewComplaintCreated(productID, complainantID, country string) ComplaintCreated {
	return ComplaintCreated{
		Base:          NewBase(DedupKey(productID, complainantID)),
		ProductID:     productID,
		ComplainantID: complainantID,
		Country:       country,
	}
}

// EventName returns the event name.
func (e ComplaintCreated) EventName() string {
	return "complaint.created"
}

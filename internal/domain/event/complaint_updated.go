package event

// Compile-time interface check
var _ Event = ComplaintContentUpdated{}

// ComplaintContentUpdated is raised when a complaint's content is replaced
// through an explicit update.
type ComplaintContentUpdated struct {
	Base
	ProductID string `json:"product_id"`
}

// NewComplaintContentUpdated creates a new ComplaintContentUpdated event.
func NewComplaintContentUpdated(complaintID, productID string) ComplaintContentUpdated {
	return ComplaintContentUpdated{
		Base:      NewBase(complaintID),
		ProductID: productID,
	}
}

// EventName returns the event name.
func (e ComplaintContentUpdated) EventName() string {
	return "complaint.content_updated"
}

package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBase(t *testing.T) {
	before := time.Now().UTC()
	b := NewBase("aggregate-1")

	assert.NotEmpty(t, b.EventID())
	assert.Equal(t, "aggregate-1", b.AggregateID())
	assert.False(t, b.OccurredAt().Before(before))
}

func TestNewBase_UniqueIDs(t *testing.T) {
	a := NewBase("aggregate-1")
	b := NewBase("aggregate-1")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "product-1:complainant-1", DedupKey("product-1", "complainant-1"))
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "created",
			event: NewComplaintCreated("p1", "c1", "Poland"),
			want:  "complaint.created",
		},
		{
			name:  "resubmitted",
			event: NewComplaintResubmitted("p1", "c1", 2),
			want:  "complaint.resubmitted",
		},
		{
			name:  "content updated",
			event: NewComplaintContentUpdated("complaint-1", "p1"),
			want:  "complaint.content_updated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.EventName())
		})
	}
}

func TestComplaintCreated_AggregateIdentity(t *testing.T) {
	e := NewComplaintCreated("p1", "c1", "Poland")
	assert.Equal(t, DedupKey("p1", "c1"), e.AggregateID())
}

func TestComplaintContentUpdated_AggregateIdentity(t *testing.T) {
	e := NewComplaintContentUpdated("complaint-1", "p1")
	assert.Equal(t, "complaint-1", e.AggregateID())
}

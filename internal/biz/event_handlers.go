package biz

import (
	"context"
	"encoding/json"

	"complaint-service/internal/domain/event"
	"complaint-service/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ eventbus.EventHandler = (*LoggingEventHandler)(nil)

// LoggingEventHandler logs all domain events.
type LoggingEventHandler struct {
	log       *log.Helper
	eventName string
}

// NewLoggingEventHandler creates a new logging event handler.
func NewLoggingEventHandler(logger log.Logger, eventName string) *LoggingEventHandler {
	return &LoggingEventHandler{
		log:       log.NewHelper(logger),
		eventName: eventName,
	}
}

func (h *LoggingEventHandler) HandlerName() string {
	return "logging_handler_" + h.eventName
}

func (h *LoggingEventHandler) EventName() string {
	return h.eventName
}

// Handle logs the event details.
func (h *LoggingEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	switch envelope.EventName {
	case "complaint.created":
		var evt event.ComplaintCreated
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Event] complaint created for product %s by %s (country: %s)", evt.ProductID, evt.ComplainantID, evt.Country)
	case "complaint.resubmitted":
		var evt event.ComplaintResubmitted
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Event] complaint resubmitted for product %s by %s (counter: %d)", evt.ProductID, evt.ComplainantID, evt.Counter)
	case "complaint.content_updated":
		var evt event.ComplaintContentUpdated
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Event] complaint %s content updated", evt.AggregateID())
	default:
		h.log.Infof("[Event] %s: %s", envelope.EventName, envelope.AggregateID)
	}
	return nil
}

// RegisterEventHandlers registers all event handlers with the router.
func RegisterEventHandlers(router *eventbus.Router, logger log.Logger) {
	eventNames := []string{
		"complaint.created",
		"complaint.resubmitted",
		"complaint.content_updated",
	}

	for _, eventName := range eventNames {
		router.AddHandler(NewLoggingEventHandler(logger, eventName))
	}
}

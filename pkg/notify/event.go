package notify

import (
	"github.com/charlie0129/battmon/pkg/events"
)

var _ Notifier = &EventNotifier{}

// EventNotifier publishes alerts to an event hub so that connected clients
// can follow them.
type EventNotifier struct {
	hub *events.EventHub
}

func NewEventNotifier(hub *events.EventHub) *EventNotifier {
	return &EventNotifier{hub: hub}
}

func (n *EventNotifier) Notify(alert Alert) error {
	n.hub.Publish(events.BatteryAlert, events.AlertEvent{
		ID:      alert.ID,
		Level:   alert.Level.String(),
		Message: alert.Message,
		Percent: alert.Percent,
		Ts:      alert.Time.Unix(),
	})
	return nil
}

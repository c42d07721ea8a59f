package catalog

import (
	"context"
	"time"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// Broadcast kinds accepted by Broadcast.
const (
	KindEmergency = "emergency"
	KindEvent     = "event"
	KindHoliday   = "holiday"
)

// BroadcastRequest describes an announcement sent to many recipients.
type BroadcastRequest struct {
	Kind       string            `json:"kind" validate:"required,oneof=emergency event holiday"`
	Channel    string            `json:"channel,omitempty" validate:"omitempty,oneof=sms whatsapp"` // empty sends on every channel
	Title      string            `json:"title" validate:"required"` // event title, holiday occasion or alert title
	Details    string            `json:"details,omitempty"`
	Venue      string            `json:"venue,omitempty"`
	Date       time.Time         `json:"date"`
	Recipients []model.Recipient `json:"recipients" validate:"required,min=1,dive"`
}

func (c *Catalog) personalise(recipients []model.Recipient, format func(name string) string) []bulk.Item {
	items := make([]bulk.Item, 0, len(recipients))
	for _, r := range recipients {
		items = append(items, bulk.Item{Recipient: r, Message: format(r.Name)})
	}
	return items
}

func (c *Catalog) emergency(recipients []model.Recipient, title, details string) []bulk.Item {
	return c.personalise(recipients, func(name string) string {
		return c.msg.EmergencyAlert(name, title, details)
	})
}

func (c *Catalog) event(recipients []model.Recipient, title string, date time.Time, venue string) []bulk.Item {
	return c.personalise(recipients, func(name string) string {
		return c.msg.EventAnnouncement(name, title, date, venue)
	})
}

func (c *Catalog) holiday(recipients []model.Recipient, occasion string, date time.Time) []bulk.Item {
	return c.personalise(recipients, func(name string) string {
		return c.msg.HolidayAnnouncement(name, occasion, date)
	})
}

// EmergencyBroadcast sends an emergency alert to every recipient.
func (c *Catalog) EmergencyBroadcast(ctx context.Context, recipients []model.Recipient, title, details string) bulk.Summary {
	return c.bulk.SendBulk(ctx, c.emergency(recipients, title, details))
}

// EventBroadcast announces an event to every recipient.
func (c *Catalog) EventBroadcast(ctx context.Context, recipients []model.Recipient, title string, date time.Time, venue string) bulk.Summary {
	return c.bulk.SendBulk(ctx, c.event(recipients, title, date, venue))
}

// HolidayBroadcast announces a holiday to every recipient.
func (c *Catalog) HolidayBroadcast(ctx context.Context, recipients []model.Recipient, occasion string, date time.Time) bulk.Summary {
	return c.bulk.SendBulk(ctx, c.holiday(recipients, occasion, date))
}

// Broadcast runs the template matching req.Kind over req.Channel, or over
// every channel when none is named. Unknown kinds produce an empty summary; a
// channel that is not available fails every recipient.
func (c *Catalog) Broadcast(ctx context.Context, req BroadcastRequest) bulk.Summary {
	var items []bulk.Item
	switch req.Kind {
	case KindEmergency:
		items = c.emergency(req.Recipients, req.Title, req.Details)
	case KindEvent:
		items = c.event(req.Recipients, req.Title, req.Date, req.Venue)
	case KindHoliday:
		items = c.holiday(req.Recipients, req.Title, req.Date)
	default:
		return bulk.Summary{Details: []bulk.Detail{}}
	}

	if req.Channel == "" {
		return c.bulk.SendBulk(ctx, items)
	}

	sender, ok := c.channels[req.Channel]
	if !ok {
		return unavailable(req.Recipients)
	}
	return sender.SendBulk(ctx, items)
}

func unavailable(recipients []model.Recipient) bulk.Summary {
	summary := bulk.Summary{Failed: len(recipients), Details: make([]bulk.Detail, 0, len(recipients))}
	for _, r := range recipients {
		summary.Details = append(summary.Details, bulk.Detail{
			Phone: r.Phone,
			Name:  r.Name,
			Error: dispatcher.ReasonNoTransport,
		})
	}
	return summary
}

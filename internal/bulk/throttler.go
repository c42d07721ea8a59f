// Package bulk delivers a list of messages one recipient at a time with a fixed
// pause between sends.
package bulk

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/panics"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// DefaultDelay is the pause between two consecutive recipients.
const DefaultDelay = 100 * time.Millisecond

var validate = validator.New()

// Item is one recipient and the message prepared for them.
type Item struct {
	Recipient model.Recipient `json:"recipient"`
	Message   string          `json:"message" validate:"required"`
}

// Detail is the outcome for one recipient.
type Detail struct {
	Phone   string                 `json:"phone"`
	Name    string                 `json:"name,omitempty"`
	Success bool                   `json:"success"`
	Results []model.DeliveryResult `json:"results,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Summary aggregates a bulk run. Sent+Failed always equals len(Details).
type Summary struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Details []Detail `json:"details"`
}

// Sender delivers one message to one phone and reports every channel attempted.
type Sender interface {
	Send(ctx context.Context, to, body string) []model.DeliveryResult
}

// SenderFunc adapts a plain function to Sender.
type SenderFunc func(ctx context.Context, to, body string) []model.DeliveryResult

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, to, body string) []model.DeliveryResult {
	return f(ctx, to, body)
}

// Throttler runs a Sender over many recipients sequentially.
type Throttler struct {
	sender Sender
	delay  time.Duration
	sleep  func(time.Duration)
}

// New creates a Throttler. A non-positive delay falls back to DefaultDelay.
func New(sender Sender, delay time.Duration) *Throttler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Throttler{sender: sender, delay: delay, sleep: time.Sleep}
}

// SendBulk delivers every item in order. A failing recipient is recorded and
// the loop moves on; the run is never aborted early.
func (t *Throttler) SendBulk(ctx context.Context, items []Item) Summary {
	summary := Summary{Details: make([]Detail, 0, len(items))}

	for i, item := range items {
		if i > 0 {
			t.sleep(t.delay)
		}

		d := t.sendOne(ctx, item)
		if d.Success {
			summary.Sent++
		} else {
			summary.Failed++
		}
		metrics.IncBulkRecipient(d.Success)
		summary.Details = append(summary.Details, d)
	}

	zlog.Logger.Info().
		Int("total", len(items)).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("bulk dispatch finished")

	return summary
}

func (t *Throttler) sendOne(ctx context.Context, item Item) Detail {
	d := Detail{Phone: item.Recipient.Phone, Name: item.Recipient.Name}

	if err := validate.Struct(item); err != nil {
		d.Error = fmt.Sprintf("invalid recipient: %v", err)
		zlog.Logger.Warn().Err(err).Str("phone", item.Recipient.Phone).Msg("skipping invalid bulk item")
		return d
	}

	var pc panics.Catcher
	pc.Try(func() { d.Results = t.sender.Send(ctx, item.Recipient.Phone, item.Message) })
	if r := pc.Recovered(); r != nil {
		d.Error = fmt.Sprintf("panic: %v", r.Value)
		zlog.Logger.Error().Interface("panic", r.Value).Str("phone", item.Recipient.Phone).Msg("bulk sender panicked")
		return d
	}

	for _, res := range d.Results {
		if res.Success {
			d.Success = true
			break
		}
	}
	if !d.Success && len(d.Results) > 0 {
		d.Error = firstError(d.Results)
	}
	return d
}

func firstError(results []model.DeliveryResult) string {
	for _, r := range results {
		if r.Error != "" {
			return r.Error
		}
	}
	return "delivery failed"
}

package bulk

import (
	"context"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/channel"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/phone"
)

type recipientSender interface {
	SendToRecipient(ctx context.Context, rawPhone, message string) dispatcher.Result
}

// ViaDispatcher sends every item over both channels.
func ViaDispatcher(d recipientSender) Sender {
	return SenderFunc(func(ctx context.Context, to, body string) []model.DeliveryResult {
		return d.SendToRecipient(ctx, to, body).All()
	})
}

// ViaChannel sends every item over a single transport, normalising the phone
// first.
func ViaChannel(t channel.Transport, countryCode string) Sender {
	return SenderFunc(func(ctx context.Context, to, body string) []model.DeliveryResult {
		normalized := phone.Normalize(to, countryCode)
		if normalized == "" {
			return []model.DeliveryResult{model.Failed(t.Name(), dispatcher.ReasonInvalidPhone)}
		}
		return []model.DeliveryResult{t.Send(ctx, normalized, body)}
	})
}

// Package channel implements the phone-addressed delivery channels.
//
// Each transport wraps one gateway call and converts every outcome, including
// transport errors, into a model.DeliveryResult.
package channel

import (
	"context"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

const whatsAppPrefix = "whatsapp:"

// Transport delivers a message body to one canonical phone number.
type Transport interface {
	Name() string
	Send(ctx context.Context, to, body string) model.DeliveryResult
}

//go:generate mockgen -source=transport.go -destination=../mocks/channel/mock.go -package=mocks
type messageCreator interface {
	CreateMessage(ctx context.Context, from, to, body string) (string, error)
}

// SMS sends plain short messages.
type SMS struct {
	client messageCreator
	from   string // sender number
}

// NewSMS creates an SMS transport sending from the given number.
func NewSMS(client messageCreator, from string) *SMS {
	return &SMS{client: client, from: from}
}

// Name returns the channel identifier.
func (s *SMS) Name() string { return model.ChannelSMS }

// Send delivers body to the canonical number to.
func (s *SMS) Send(ctx context.Context, to, body string) model.DeliveryResult {
	return deliver(ctx, s.client, model.ChannelSMS, s.from, to, body)
}

// WhatsApp sends messages over the WhatsApp network of the same gateway.
type WhatsApp struct {
	client messageCreator
	from   string // sender number, with or without the whatsapp: prefix
}

// NewWhatsApp creates a WhatsApp transport sending from the given number.
func NewWhatsApp(client messageCreator, from string) *WhatsApp {
	return &WhatsApp{client: client, from: from}
}

// Name returns the channel identifier.
func (w *WhatsApp) Name() string { return model.ChannelWhatsApp }

// Send delivers body to the canonical number to.
func (w *WhatsApp) Send(ctx context.Context, to, body string) model.DeliveryResult {
	if w.from == "" {
		return deliver(ctx, w.client, model.ChannelWhatsApp, "", to, body)
	}
	return deliver(ctx, w.client, model.ChannelWhatsApp, withPrefix(w.from), withPrefix(to), body)
}

func withPrefix(addr string) string {
	if strings.HasPrefix(addr, whatsAppPrefix) {
		return addr
	}
	return whatsAppPrefix + addr
}

func deliver(ctx context.Context, client messageCreator, channel, from, to, body string) model.DeliveryResult {
	log := zlog.Logger.With().Str("channel", channel).Str("phone", to).Logger()

	if from == "" {
		log.Warn().Msg("sender not configured, message not sent")
		return model.Failed(channel, channel+" sender not configured")
	}

	start := time.Now()
	sid, err := client.CreateMessage(ctx, from, to, body)
	metrics.ObserveDelivery(channel, err == nil, time.Since(start))

	if err != nil {
		log.Error().Err(err).Msg("failed to deliver message")
		return model.Failed(channel, err.Error())
	}

	log.Info().Str("message_id", sid).Msg("message delivered")
	return model.DeliveryResult{Channel: channel, Success: true, MessageID: sid}
}

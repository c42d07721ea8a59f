// Package dispatcher delivers one message to one recipient over the SMS and
// WhatsApp channels at the same time.
//
// Both attempts always run to completion; a failure or panic on one channel is
// captured as that channel's DeliveryResult and never affects the other.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/channel"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/phone"
)

// Failure reasons reported without touching the network.
const (
	ReasonNotConfigured = "messaging gateway not configured"
	ReasonInvalidPhone  = "invalid phone number"
	ReasonNoTransport   = "channel disabled"
)

// Result holds one DeliveryResult per channel.
type Result struct {
	SMS      model.DeliveryResult `json:"sms"`
	WhatsApp model.DeliveryResult `json:"whatsapp"`
}

// All returns the per-channel results in a fixed order.
func (r Result) All() []model.DeliveryResult {
	return []model.DeliveryResult{r.SMS, r.WhatsApp}
}

// Delivered reports whether at least one channel accepted the message.
func (r Result) Delivered() bool {
	return r.SMS.Success || r.WhatsApp.Success
}

func failedBoth(reason string) Result {
	return Result{
		SMS:      model.Failed(model.ChannelSMS, reason),
		WhatsApp: model.Failed(model.ChannelWhatsApp, reason),
	}
}

type gateway interface {
	Configured() bool
}

// Dispatcher fans a message out to both channel transports.
type Dispatcher struct {
	gateway     gateway
	sms         channel.Transport
	whatsapp    channel.Transport
	countryCode string
}

// New creates a Dispatcher. gw decides whether credentials are present;
// countryCode is used to normalise local numbers.
func New(gw gateway, sms, whatsapp channel.Transport, countryCode string) *Dispatcher {
	return &Dispatcher{
		gateway:     gw,
		sms:         sms,
		whatsapp:    whatsapp,
		countryCode: countryCode,
	}
}

// Normalize converts a raw phone into the form the transports expect.
func (d *Dispatcher) Normalize(raw string) string {
	return phone.Normalize(raw, d.countryCode)
}

// SendToRecipient delivers message to rawPhone on both channels and waits
// for both attempts to settle.
func (d *Dispatcher) SendToRecipient(ctx context.Context, rawPhone, message string) Result {
	to := d.Normalize(rawPhone)

	if d.gateway == nil || !d.gateway.Configured() {
		zlog.Logger.Warn().Str("phone", to).Msg("messaging gateway not configured, skipping delivery")
		return failedBoth(ReasonNotConfigured)
	}

	if to == "" {
		zlog.Logger.Warn().Str("raw_phone", rawPhone).Msg("invalid phone number, skipping delivery")
		return failedBoth(ReasonInvalidPhone)
	}

	var (
		res Result
		wg  conc.WaitGroup
	)
	wg.Go(func() { res.SMS = attempt(ctx, d.sms, model.ChannelSMS, to, message) })
	wg.Go(func() { res.WhatsApp = attempt(ctx, d.whatsapp, model.ChannelWhatsApp, to, message) })
	wg.Wait()

	zlog.Logger.Info().
		Str("phone", to).
		Bool("sms", res.SMS.Success).
		Bool("whatsapp", res.WhatsApp.Success).
		Msg("dispatch settled")

	return res
}

// attempt runs one transport and converts a panic into a failed result.
func attempt(ctx context.Context, t channel.Transport, name, to, body string) model.DeliveryResult {
	if t == nil {
		return model.Failed(name, ReasonNoTransport)
	}

	var (
		res model.DeliveryResult
		pc  panics.Catcher
	)
	pc.Try(func() { res = t.Send(ctx, to, body) })

	if r := pc.Recovered(); r != nil {
		zlog.Logger.Error().Str("channel", name).Str("phone", to).Interface("panic", r.Value).Msg("channel transport panicked")
		return model.Failed(name, fmt.Sprintf("panic: %v", r.Value))
	}

	if res.Channel == "" {
		res.Channel = name
	}
	return res
}

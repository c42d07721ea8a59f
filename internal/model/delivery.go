package model

// Channel identifiers.
const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// DeliveryResult is the outcome of one channel attempt for one recipient.
type DeliveryResult struct {
	Channel   string `json:"channel"`              // "sms" or "whatsapp"
	Success   bool   `json:"success"`              // true when the gateway accepted the message
	MessageID string `json:"message_id,omitempty"` // provider id, set on success
	Error     string `json:"error,omitempty"`      // gateway or transport error, set on failure
}

// Failed builds an unsuccessful result for channel.
func Failed(channel, reason string) DeliveryResult {
	return DeliveryResult{Channel: channel, Error: reason}
}

// Recipient is a phone-addressable person. Phone is kept as supplied.
type Recipient struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name,omitempty"`
}

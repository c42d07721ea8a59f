// Package realtime pushes events to connected subscribers.
//
// Delivery is at-most-once with no replay: a subscriber that is not connected
// when an event is published never sees it. The process-wide broker handle may
// be absent, in which case publishing is a no-op.
package realtime

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// Broker publishes an event on one topic.
type Broker interface {
	Publish(ctx context.Context, topic string, ev model.Event) error
}

// Provider returns the broker to publish through, or nil when none is
// available.
type Provider func() Broker

type holder struct{ broker Broker }

var current atomic.Pointer[holder]

// SetBroker installs the process-wide broker. The lifecycle owner calls it
// once the broker is ready.
func SetBroker(b Broker) {
	if b == nil {
		ClearBroker()
		return
	}
	current.Store(&holder{broker: b})
}

// ClearBroker removes the process-wide broker, e.g. during shutdown.
func ClearBroker() {
	current.Store(nil)
}

// CurrentBroker returns the process-wide broker or nil if none is installed.
func CurrentBroker() Broker {
	h := current.Load()
	if h == nil {
		return nil
	}
	return h.broker
}

// Fanout publishes to several brokers. Every broker is attempted; the
// returned error joins the individual failures.
func Fanout(brokers ...Broker) Broker {
	return fanout(brokers)
}

type fanout []Broker

func (f fanout) Publish(ctx context.Context, topic string, ev model.Event) error {
	var errs []error
	for _, b := range f {
		if b == nil {
			continue
		}
		if err := b.Publish(ctx, topic, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Topic names.

// TenantTopic addresses every dashboard of a tenant.
func TenantTopic(tenantID string) string { return "tenant:" + tenantID }

// UserTopic addresses every session of one user.
func UserTopic(userID string) string { return "user:" + userID }

// RoleTopic addresses every session holding role within a tenant.
func RoleTopic(tenantID, role string) string { return "role:" + tenantID + ":" + role }

// ActivityTopic is the tenant-wide activity feed mirrored from every
// tenant-scoped publish.
func ActivityTopic(tenantID string) string { return "activity:" + tenantID }

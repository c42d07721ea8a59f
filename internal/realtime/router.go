package realtime

import (
	"context"

	"github.com/sourcegraph/conc/panics"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// Router addresses an event to its topics and publishes it through the
// current broker. It never returns an error.
type Router struct {
	provider Provider
}

// NewRouter creates a Router. A nil provider uses the process-wide broker.
func NewRouter(p Provider) *Router {
	if p == nil {
		p = CurrentBroker
	}
	return &Router{provider: p}
}

// Route publishes ev on the topics it addresses: a user-targeted event goes
// to that user, a role-targeted event to that role within the tenant, anything
// else to the whole tenant. A missing broker makes it a no-op; publish
// failures are logged and dropped.
func (r *Router) Route(ctx context.Context, ev model.Event) {
	switch {
	case ev.TargetUserID != "":
		r.ToUser(ctx, ev.TenantID, ev.TargetUserID, ev)
	case ev.TargetRole != "" && ev.TargetRole != model.TargetAll:
		r.ToRole(ctx, ev.TenantID, ev.TargetRole, ev)
	default:
		r.ToTenant(ctx, ev.TenantID, ev)
	}
}

// ToTenant publishes ev to every dashboard of tenantID and to its activity feed.
func (r *Router) ToTenant(ctx context.Context, tenantID string, ev model.Event) {
	r.publishAll(ctx, ev, TenantTopic(tenantID), ActivityTopic(tenantID))
}

// ToUser publishes ev to every session of userID, mirrored onto the tenant
// activity feed.
func (r *Router) ToUser(ctx context.Context, tenantID, userID string, ev model.Event) {
	r.publishAll(ctx, ev, UserTopic(userID), ActivityTopic(tenantID))
}

// ToRole publishes ev to every session holding role in tenantID, mirrored onto
// the tenant activity feed.
func (r *Router) ToRole(ctx context.Context, tenantID, role string, ev model.Event) {
	r.publishAll(ctx, ev, RoleTopic(tenantID, role), ActivityTopic(tenantID))
}

func (r *Router) publishAll(ctx context.Context, ev model.Event, topics ...string) {
	broker := r.provider()
	if broker == nil {
		metrics.IncRealtimePublish(metrics.ResultSkipped)
		return
	}

	for _, topic := range topics {
		r.publish(ctx, broker, topic, ev)
	}
}

func (r *Router) publish(ctx context.Context, broker Broker, topic string, ev model.Event) {
	var (
		err error
		pc  panics.Catcher
	)
	pc.Try(func() { err = broker.Publish(ctx, topic, ev) })
	if rec := pc.Recovered(); rec != nil {
		err = rec.AsError()
	}

	if err != nil {
		metrics.IncRealtimePublish(metrics.ResultFailure)
		zlog.Logger.Warn().Err(err).
			Str("topic", topic).
			Str("event_id", ev.ID.String()).
			Msg("realtime publish failed")
		return
	}
	metrics.IncRealtimePublish(metrics.ResultSuccess)
}

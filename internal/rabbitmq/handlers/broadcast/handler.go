package broadcast

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/broadcast/mock.go -package=mocks
type broadcaster interface {
	Broadcast(ctx context.Context, req catalog.BroadcastRequest) bulk.Summary
}

type eventTrigger interface {
	Trigger(ctx context.Context, in event.Input, opts ...emitter.Option) (model.Event, error)
}

// Handler runs queued broadcasts and reports their outcome in-app.
type Handler struct {
	catalog broadcaster
	events  eventTrigger
}

// NewHandler creates a Handler.
func NewHandler(c broadcaster, e eventTrigger) *Handler {
	return &Handler{
		catalog: c,
		events:  e,
	}
}

// HandleMessage sends the broadcast described by job and notifies the
// requester once every recipient has been attempted. Per-recipient failures
// are part of the summary and never abort the job.
func (h *Handler) HandleMessage(ctx context.Context, job queue.BroadcastJob) {
	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("kind", job.Request.Kind).
		Int("recipients", len(job.Request.Recipients)).
		Msg("Handle Message: got broadcast job")

	summary := h.catalog.Broadcast(ctx, job.Request)

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("Handle Message: broadcast finished")

	actor := job.RequestedBy
	in := event.Input{
		Type:         model.EventBroadcastCompleted,
		TenantID:     job.TenantID,
		Title:        "Broadcast completed",
		Message:      fmt.Sprintf("%q delivered to %d of %d recipients", job.Request.Title, summary.Sent, summary.Sent+summary.Failed),
		Module:       "communication",
		EntityID:     job.ID.String(),
		TargetUserID: actor.ID,
		Actor:        &actor,
		Metadata: map[string]any{
			"kind":   job.Request.Kind,
			"sent":   summary.Sent,
			"failed": summary.Failed,
		},
	}

	if _, err := h.events.Trigger(ctx, in); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to emit broadcast completion")
	}
}

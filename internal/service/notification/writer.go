package notification

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/panics"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// DefaultWriteTimeout bounds a single durable write.
const DefaultWriteTimeout = 5 * time.Second

// Writer mirrors events into the tenant's notification store. Write never
// reports failure to its caller.
type Writer struct {
	repo     notificationRepository
	cache    cache
	strategy retry.Strategy
	timeout  time.Duration
}

// NewWriter creates a Writer. cache may be nil.
func NewWriter(repo notificationRepository, cache cache, strategy retry.Strategy, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Writer{repo: repo, cache: cache, strategy: strategy, timeout: timeout}
}

// Write stores an unread record for ev. The write is detached from the
// caller's cancellation and bounded by the writer's own timeout; errors and
// panics are logged and dropped.
func (w *Writer) Write(ctx context.Context, ev model.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	var pc panics.Catcher
	pc.Try(func() { w.write(ctx, ev) })

	if r := pc.Recovered(); r != nil {
		metrics.IncDurableWrite(metrics.ResultFailure)
		zlog.Logger.Error().
			Interface("panic", r.Value).
			Str("event_id", ev.ID.String()).
			Msg("notification write panicked")
	}
}

func (w *Writer) write(ctx context.Context, ev model.Event) {
	id, err := w.repo.Create(ctx, model.RecordFromEvent(ev))
	if err != nil {
		metrics.IncDurableWrite(metrics.ResultFailure)
		zlog.Logger.Error().Err(err).
			Str("event_id", ev.ID.String()).
			Str("tenant_id", ev.TenantID).
			Msg("failed to persist notification")
		return
	}

	metrics.IncDurableWrite(metrics.ResultSuccess)
	zlog.Logger.Debug().
		Str("id", id.String()).
		Str("tenant_id", ev.TenantID).
		Str("type", string(ev.Type)).
		Msg("notification persisted")

	refreshUnread(ctx, w.repo, w.cache, w.strategy, ev.TenantID)
}

package worker

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/queue"
)

//go:generate mockgen -source=broadcaster.go -destination=../mocks/worker/mock.go -package=mocks
type jobConsumer interface {
	Consume(ctx context.Context, out chan<- queue.BroadcastJob, strategy retry.Strategy) error
}

type jobHandler interface {
	HandleMessage(ctx context.Context, job queue.BroadcastJob)
}

// Broadcaster drains the broadcast queue. Jobs are handled one at a time so
// that the bulk pacing applies across jobs as well as within them.
type Broadcaster struct {
	queue   jobConsumer
	handler jobHandler
}

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(q jobConsumer, h jobHandler) *Broadcaster {
	return &Broadcaster{
		queue:   q,
		handler: h,
	}
}

// Run consumes jobs until ctx is done. A job in progress is finished before
// Run returns.
func (b *Broadcaster) Run(ctx context.Context, strategy retry.Strategy) {
	jobs := make(chan queue.BroadcastJob)

	go func() {
		if err := b.queue.Consume(ctx, jobs, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume broadcast jobs")
		}
	}()

	zlog.Logger.Print("broadcast worker started")

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("broadcast worker stopped")
			return
		case job, ok := <-jobs:
			if !ok {
				zlog.Logger.Print("broadcast job channel closed, shutting down")
				return
			}

			// The job runs to completion even when shutdown starts mid-way.
			b.handler.HandleMessage(context.WithoutCancel(ctx), job)
		}
	}
}

// Package emitter fires the best-effort side effects of a business event: the
// realtime fan-out and the durable notification write.
//
// Emit and Trigger return as soon as both side effects are launched. Nothing
// that happens inside them can reach or delay the caller.
package emitter

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

type router interface {
	Route(ctx context.Context, ev model.Event)
}

type writer interface {
	Write(ctx context.Context, ev model.Event)
}

type options struct {
	persist bool
}

// Option tunes a single emission.
type Option func(*options)

// WithoutPersist skips the durable write, for callers that store their own
// notification record.
func WithoutPersist() Option {
	return func(o *options) { o.persist = false }
}

// Emitter launches the side effects of events.
type Emitter struct {
	builder *event.Builder
	router  router
	writer  writer
	wg      sync.WaitGroup
}

// New creates an Emitter. writer may be nil, in which case nothing is
// persisted.
func New(b *event.Builder, r router, w writer) *Emitter {
	if b == nil {
		b = event.NewBuilder()
	}
	return &Emitter{builder: b, router: r, writer: w}
}

// Trigger builds an event from in and emits it. Only build errors are
// returned; the side effects never fail the call.
func (e *Emitter) Trigger(ctx context.Context, in event.Input, opts ...Option) (model.Event, error) {
	ev, err := e.builder.Build(in)
	if err != nil {
		return model.Event{}, err
	}

	e.Emit(ctx, ev, opts...)
	return ev, nil
}

// Emit launches the realtime publish and the durable write for ev without
// waiting for either.
func (e *Emitter) Emit(ctx context.Context, ev model.Event, opts ...Option) {
	o := options{persist: true}
	for _, opt := range opts {
		opt(&o)
	}

	metrics.IncEventEmitted(string(ev.Type))

	// Side effects outlive the request that triggered them.
	ctx = context.WithoutCancel(ctx)

	if e.router != nil {
		e.spawn("realtime", ev, func() { e.router.Route(ctx, ev) })
	}
	if o.persist && e.writer != nil {
		e.spawn("persist", ev, func() { e.writer.Write(ctx, ev) })
	}
}

func (e *Emitter) spawn(name string, ev model.Event, fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		var pc panics.Catcher
		pc.Try(fn)
		if r := pc.Recovered(); r != nil {
			zlog.Logger.Error().
				Interface("panic", r.Value).
				Str("side_effect", name).
				Str("event_id", ev.ID.String()).
				Msg("event side effect panicked")
		}
	}()
}

// Wait blocks until every launched side effect has finished or ctx is done.
// It is meant for shutdown and tests.
func (e *Emitter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// BroadcastJob is a queued bulk announcement.
type BroadcastJob struct {
	ID          uuid.UUID                `json:"id"`
	TenantID    string                   `json:"tenant_id"`
	RequestedBy model.Actor              `json:"requested_by"`
	Request     catalog.BroadcastRequest `json:"request"`
	CreatedAt   time.Time                `json:"created_at"`
}

// BroadcastQueue publishes and consumes broadcast jobs.
type BroadcastQueue struct {
	Publisher  *rabbitmq.Publisher
	Consumer   *rabbitmq.Consumer
	routingKey string
}

// NewBroadcastQueue declares the broadcast topology and returns a queue bound
// to it.
//
// Jobs wait on cfg.Queue. A job nobody picks up within cfg.JobTTL is moved to
// cfg.DLQ instead of being sent late; operators inspect or replay it from
// there.
func NewBroadcastQueue(ch *rabbitmq.Channel, cfg config.RabbitMQ) (*BroadcastQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("bind broadcast exchange: %w", err)
	}

	jobs, err := declareJobQueues(ch, cfg)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(jobs, cfg.RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("bind %s to %s: %w", jobs, exchange.Name(), err)
	}

	return &BroadcastQueue{
		Publisher:  rabbitmq.NewPublisher(ch, exchange.Name()),
		Consumer:   rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(jobs)),
		routingKey: cfg.RoutingKey,
	}, nil
}

// declareJobQueues declares the dead letter queue and the job queue feeding
// it, and returns the job queue name.
func declareJobQueues(ch *rabbitmq.Channel, cfg config.RabbitMQ) (string, error) {
	qm := rabbitmq.NewQueueManager(ch)

	if _, err := qm.DeclareQueue(cfg.DLQ, rabbitmq.QueueConfig{Durable: true}); err != nil {
		return "", fmt.Errorf("declare %s: %w", cfg.DLQ, err)
	}

	q, err := qm.DeclareQueue(cfg.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    jobQueueArgs(cfg),
	})
	if err != nil {
		return "", fmt.Errorf("declare %s: %w", cfg.Queue, err)
	}

	return q.Name, nil
}

// jobQueueArgs returns the arguments of the job queue: expired or rejected jobs
// go to the dead letter queue.
func jobQueueArgs(cfg config.RabbitMQ) map[string]interface{} {
	args := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.DLQ,
	}
	if cfg.JobTTL > 0 {
		args["x-message-ttl"] = int32(cfg.JobTTL.Milliseconds())
	}
	return args
}

// Publish enqueues job.
func (q *BroadcastQueue) Publish(job BroadcastJob, strategy retry.Strategy) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, q.routingKey, "application/json", strategy)
}

// Consume delivers decoded jobs to out until ctx is done or the consumer stops.
func (q *BroadcastQueue) Consume(ctx context.Context, out chan<- BroadcastJob, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go Forward(ctx, msgChan, out)

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}

// Forward decodes raw bodies from in and sends them to out. Bodies that are not
// valid jobs are logged and dropped.
func Forward(ctx context.Context, in <-chan []byte, out chan<- BroadcastJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case body, ok := <-in:
			if !ok {
				return
			}

			var job BroadcastJob
			if err := json.Unmarshal(body, &job); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal broadcast job")
				continue
			}

			select {
			case out <- job:
			case <-ctx.Done():
				return
			}
		}
	}
}

package di

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/alert"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/broadcast"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/notification"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/ws"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/router"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/server"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/channel"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	eventbuilder "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	broadcastmsg "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/handlers/broadcast"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/queue"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/realtime"
	notifrepo "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/repository/notification"
	notifsvc "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/service/notification"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/worker"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/pkg/twilio"
)

const pingTimeout = 5 * time.Second

// unreadCache is the cache the notification service and writer accept.
// A nil value disables caching.
type unreadCache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

func provideStore(cfg *config.Config) (notifrepo.Store, func(), error) {
	if cfg.Store.Driver == config.DriverSQLite {
		store, err := notifrepo.NewSQLiteRepository(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		zlog.Logger.Info().Str("path", cfg.Store.SQLitePath).Msg("using sqlite notification store")

		return store, func() {
			if err := store.Close(); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to close sqlite store")
			}
		}, nil
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	cleanup := func() {
		if err := db.Master.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close master DB")
		}
		for i, s := range db.Slaves {
			if err := s.Close(); err != nil {
				zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
			}
		}
	}

	return notifrepo.NewRepository(db), cleanup, nil
}

func provideCache(cfg *config.Config) (unreadCache, func(), error) {
	if !cfg.Redis.Enabled() {
		zlog.Logger.Info().Msg("redis not configured, unread counts are read from the store")
		return nil, func() {}, nil
	}

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis database: %w", err)
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	return rdb, func() {
		if err := rdb.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close redis client")
		}
	}, nil
}

func provideChannel(cfg *config.Config) (*rabbitmq.Channel, func(), error) {
	if !cfg.RabbitMQ.Enabled() {
		zlog.Logger.Info().Msg("rabbitmq not configured, queued broadcasts are disabled")
		return nil, func() {}, nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	return ch, func() {
		if err := ch.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
		}
		if err := conn.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
		}
	}, nil
}

func provideQueue(cfg *config.Config, ch *rabbitmq.Channel) (*queue.BroadcastQueue, error) {
	if ch == nil {
		return nil, nil
	}
	return queue.NewBroadcastQueue(ch, cfg.RabbitMQ)
}

func provideHub(cfg *config.Config) *realtime.Hub {
	return realtime.NewHub(cfg.Realtime.Buffer, cfg.Realtime.AllowedOrigins...)
}

// provideBroker installs the process-wide realtime broker: the in-process hub,
// mirrored to a RabbitMQ topic exchange when one is configured.
func provideBroker(cfg *config.Config, hub *realtime.Hub) (realtime.Broker, func(), error) {
	if cfg.Realtime.AMQPURL == "" {
		realtime.SetBroker(hub)
		return hub, realtime.ClearBroker, nil
	}

	mirror, err := realtime.DialAMQP(cfg.Realtime.AMQPURL, cfg.Realtime.Exchange)
	if err != nil {
		return nil, nil, fmt.Errorf("connect realtime broker: %w", err)
	}

	b := realtime.Fanout(hub, mirror)
	realtime.SetBroker(b)

	return b, func() {
		realtime.ClearBroker()
		if err := mirror.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close realtime broker")
		}
	}, nil
}

// provideRouter takes the broker only to order its installation first.
func provideRouter(_ realtime.Broker) *realtime.Router {
	return realtime.NewRouter(nil)
}

func provideTwilio(cfg *config.Config) *twilio.Client {
	return twilio.NewClient(
		cfg.Gateway.AccountSID,
		cfg.Gateway.AuthToken,
		twilio.WithBaseURL(cfg.Gateway.BaseURL),
		twilio.WithTimeout(cfg.Gateway.Timeout),
	)
}

// transports holds the channel transports; a nil field is a channel with no
// sender identity configured.
type transports struct {
	sms      channel.Transport
	whatsapp channel.Transport
}

func provideTransports(cfg *config.Config, client *twilio.Client) transports {
	var t transports
	if cfg.Gateway.SMSFrom != "" {
		t.sms = channel.NewSMS(client, cfg.Gateway.SMSFrom)
	}
	if cfg.Gateway.WhatsAppFrom != "" {
		t.whatsapp = channel.NewWhatsApp(client, cfg.Gateway.WhatsAppFrom)
	}
	return t
}

func provideDispatcher(cfg *config.Config, client *twilio.Client, t transports) *dispatcher.Dispatcher {
	if !client.Configured() {
		zlog.Logger.Warn().Msg("messaging gateway not configured, SMS and WhatsApp are disabled")
	}

	return dispatcher.New(client, t.sms, t.whatsapp, cfg.Notify.DefaultCountryCode)
}

func provideThrottler(cfg *config.Config, d *dispatcher.Dispatcher) *bulk.Throttler {
	return bulk.New(bulk.ViaDispatcher(d), cfg.Notify.BulkDelay)
}

// provideCatalog registers a paced single-channel sender for every channel
// that can deliver. Without gateway credentials none is registered.
func provideCatalog(cfg *config.Config, client *twilio.Client, d *dispatcher.Dispatcher, th *bulk.Throttler, t transports) *catalog.Catalog {
	msg := catalog.Messages{
		Institution: cfg.Notify.InstitutionName,
		Currency:    cfg.Notify.CurrencySymbol,
	}

	var opts []catalog.Option
	if client.Configured() {
		for _, tr := range []channel.Transport{t.sms, t.whatsapp} {
			if tr == nil {
				continue
			}
			sender := bulk.New(bulk.ViaChannel(tr, cfg.Notify.DefaultCountryCode), cfg.Notify.BulkDelay)
			opts = append(opts, catalog.WithChannelSender(tr.Name(), sender))
		}
	}

	return catalog.New(msg, d, th, cfg.Notify.DefaultCountryCode, opts...)
}

func provideService(store notifrepo.Store, cache unreadCache) *notifsvc.Service {
	return notifsvc.NewService(store, cache)
}

func provideWriter(cfg *config.Config, store notifrepo.Store, cache unreadCache) *notifsvc.Writer {
	return notifsvc.NewWriter(store, cache, cfg.Retry, cfg.Notify.WriteTimeout)
}

func provideEmitter(r *realtime.Router, w *notifsvc.Writer) *emitter.Emitter {
	return emitter.New(eventbuilder.NewBuilder(), r, w)
}

func provideWorker(q *queue.BroadcastQueue, c *catalog.Catalog, e *emitter.Emitter) *worker.Broadcaster {
	if q == nil {
		return nil
	}
	return worker.NewBroadcaster(q, broadcastmsg.NewHandler(c, e))
}

func provideHandlers(
	cfg *config.Config,
	svc *notifsvc.Service,
	e *emitter.Emitter,
	c *catalog.Catalog,
	q *queue.BroadcastQueue,
	hub *realtime.Hub,
) router.Handlers {
	v := validator.New()

	bh := broadcast.NewHandler(nil, v, cfg)
	if q != nil {
		bh = broadcast.NewHandler(q, v, cfg)
	}

	return router.Handlers{
		Notification: notification.NewHandler(svc, cfg),
		Event:        event.NewHandler(e, v),
		Alert:        alert.NewHandler(c, e, v),
		Broadcast:    bh,
		WS:           ws.NewHandler(hub),
	}
}

func provideServer(cfg *config.Config, h router.Handlers) *http.Server {
	return server.New(cfg.Server.HTTPPort, router.New(h))
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	repo "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/repository/notification"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	Create(context.Context, model.NotificationRecord) (uuid.UUID, error)
	MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, tenantID, role string) (int64, error)
	CountUnread(ctx context.Context, tenantID, role string) (int64, error)
	List(context.Context, repo.Filter) ([]model.NotificationRecord, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// UnreadKey is the cache key holding a tenant's whole unread count.
func UnreadKey(tenantID string) string {
	return "unread:" + tenantID
}

// Service serves the read side of the notification store and the recipient
// actions on it.
type Service struct {
	repo  notificationRepository
	cache cache
}

func NewService(repo notificationRepository, cache cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, f repo.Filter) ([]model.NotificationRecord, error) {
	records, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return records, nil
}

// UnreadCount returns how many unread records of the tenant role can see. An
// empty role counts the whole tenant; that count is served from the cache,
// falling back to the store on a miss. Role-scoped counts always come from
// the store.
func (s *Service) UnreadCount(ctx context.Context, strategy retry.Strategy, tenantID, role string) (int64, error) {
	if role != "" {
		n, err := s.repo.CountUnread(ctx, tenantID, role)
		if err != nil {
			return 0, fmt.Errorf("count unread notifications: %w", err)
		}
		return n, nil
	}

	if s.cache != nil {
		key := UnreadKey(tenantID)

		cached, err := s.cache.GetWithRetry(ctx, strategy, key)
		if err == nil {
			n, perr := strconv.ParseInt(cached, 10, 64)
			if perr == nil {
				return n, nil
			}
			zlog.Logger.Warn().Err(perr).Str("key", key).Msg("malformed cached unread count")
		} else if !errors.Is(err, redis.Nil) {
			zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to get unread count from cache")
		}
	}

	n, err := s.repo.CountUnread(ctx, tenantID, "")
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	s.storeUnread(ctx, strategy, tenantID, n)

	return n, nil
}

// MarkRead marks one record read. Repeating the call is harmless.
func (s *Service) MarkRead(ctx context.Context, strategy retry.Strategy, tenantID string, id uuid.UUID) error {
	err := s.repo.MarkRead(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	s.refreshUnread(ctx, strategy, tenantID)

	return nil
}

// MarkAllRead marks every unread record of the tenant that role can see read
// and returns how many changed. An empty role covers the whole tenant.
func (s *Service) MarkAllRead(ctx context.Context, strategy retry.Strategy, tenantID, role string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, tenantID, role)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	if role == "" {
		s.storeUnread(ctx, strategy, tenantID, 0)
	} else if n > 0 {
		s.refreshUnread(ctx, strategy, tenantID)
	}

	return n, nil
}

func (s *Service) refreshUnread(ctx context.Context, strategy retry.Strategy, tenantID string) {
	refreshUnread(ctx, s.repo, s.cache, strategy, tenantID)
}

func (s *Service) storeUnread(ctx context.Context, strategy retry.Strategy, tenantID string, n int64) {
	storeUnread(ctx, s.cache, strategy, tenantID, n)
}

// refreshUnread recounts from the store and writes the result through to the
// cache. Failures only get logged.
func refreshUnread(ctx context.Context, r notificationRepository, c cache, strategy retry.Strategy, tenantID string) {
	if c == nil {
		return
	}

	n, err := r.CountUnread(ctx, tenantID, "")
	if err != nil {
		zlog.Logger.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to recount unread notifications")
		return
	}

	storeUnread(ctx, c, strategy, tenantID, n)
}

func storeUnread(ctx context.Context, c cache, strategy retry.Strategy, tenantID string, n int64) {
	if c == nil {
		return
	}

	if err := c.SetWithRetry(ctx, strategy, UnreadKey(tenantID), n); err != nil {
		zlog.Logger.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to cache unread count")
	}
}

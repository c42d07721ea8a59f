package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	repo "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/repository/notification"
)

// notificationService defines the interface that the Handler depends on.
//
// It abstracts listing a tenant's in-app notifications, counting the unread
// ones and marking them read.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	List(ctx context.Context, f repo.Filter) ([]model.NotificationRecord, error)
	UnreadCount(ctx context.Context, strategy retry.Strategy, tenantID, role string) (int64, error)
	MarkRead(ctx context.Context, strategy retry.Strategy, tenantID string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, strategy retry.Strategy, tenantID, role string) (int64, error)
}

// Handler handles HTTP requests related to in-app notifications.
//
// Every request is scoped to the caller's tenant as resolved by the identity
// middleware.
type Handler struct {
	service notificationService
	cfg     *config.Config
}

// NewHandler creates a new Handler instance.
//
// Parameters:
//   - s: implementation of notificationService
//   - cfg: configuration instance
func NewHandler(s notificationService, cfg *config.Config) *Handler {
	return &Handler{service: s, cfg: cfg}
}

// List handles HTTP GET requests for the caller's notifications.
//
// Optional query parameters: status ("unread" or "read") and limit.
// Non-admin callers only see records addressed to everyone or to their role.
func (h *Handler) List(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	// Validate the status filter.
	status := c.Query("status")
	if status != "" && status != model.StatusUnread && status != model.StatusRead {
		zlog.Logger.Warn().Str("status", status).Msg("invalid status filter")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid status"))
		return
	}

	// Parse the optional limit.
	var limit int
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			zlog.Logger.Warn().Str("limit", raw).Msg("invalid limit")
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid limit"))
			return
		}
		limit = n
	}

	role := visibleRole(id)

	records, err := h.service.List(c.Request.Context(), repo.Filter{
		TenantID: id.TenantID,
		Role:     role,
		Status:   status,
		Limit:    limit,
	})
	if err != nil {
		zlog.Logger.Error().Err(err).Str("tenant_id", id.TenantID).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, records)
}

// UnreadCount handles HTTP GET requests for the caller's unread counter.
func (h *Handler) UnreadCount(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	n, err := h.service.UnreadCount(c.Request.Context(), h.cfg.Retry, id.TenantID, visibleRole(id))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("tenant_id", id.TenantID).Msg("failed to count unread notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"unread": n})
}

// MarkRead handles HTTP PATCH requests marking one notification read.
//
// Marking an already read notification succeeds again. A notification of
// another tenant is reported as not found.
func (h *Handler) MarkRead(c *ginext.Context) {
	ident, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	// Extract notification ID from URL parameters.
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	// Check for missing ID.
	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	err = h.service.MarkRead(c.Request.Context(), h.cfg.Retry, ident.TenantID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotificationNotFound) {
			zlog.Logger.Warn().Interface("id", id).Err(err).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Interface("id", id).Msg("failed to mark notification read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification marked read")
}

// MarkAllRead handles HTTP PATCH requests marking every unread notification
// the caller can see read. It returns how many records changed.
func (h *Handler) MarkAllRead(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	n, err := h.service.MarkAllRead(c.Request.Context(), h.cfg.Retry, id.TenantID, visibleRole(id))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("tenant_id", id.TenantID).Msg("failed to mark all notifications read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"updated": n})
}

// visibleRole is the role filter applied to a caller: none for admins, who see
// the whole tenant, otherwise the caller's own role.
func visibleRole(id middlewares.Identity) string {
	if id.Actor.Role == model.RoleAdmin {
		return ""
	}
	return id.Actor.Role
}

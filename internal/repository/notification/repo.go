package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Filter narrows List to one tenant and optionally one role and status.
type Filter struct {
	TenantID string
	Role     string // records targeted at "all" or this role; empty means every record
	Status   string // "unread", "read" or empty
	Limit    int
}

func (f Filter) limit() int {
	if f.Limit <= 0 || f.Limit > 500 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store is implemented by both the Postgres and the SQLite repositories.
type Store interface {
	Create(ctx context.Context, rec model.NotificationRecord) (uuid.UUID, error)
	MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, tenantID, role string) (int64, error)
	CountUnread(ctx context.Context, tenantID, role string) (int64, error)
	List(ctx context.Context, f Filter) ([]model.NotificationRecord, error)
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*SQLiteRepository)(nil)
)

// Repository provides methods to interact with notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification record and returns its ID.
func (r *Repository) Create(ctx context.Context, rec model.NotificationRecord) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    tenant_id, type, title, message, target_role, status,
		    module, entity_id, action_url, actor_name, actor_role, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query,
		rec.TenantID, rec.Type, rec.Title, rec.Message, rec.TargetRole, rec.Status,
		rec.Module, rec.EntityID, rec.ActionURL, rec.ActorName, rec.ActorRole, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return rec.ID, nil
}

// MarkRead marks one record of the tenant as read. Marking an already read
// record succeeds.
func (r *Repository) MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'read'
		WHERE id = $1 AND tenant_id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread record of the tenant visible to role as read
// and returns how many changed. An empty role covers the whole tenant. A
// repeated call returns zero.
func (r *Repository) MarkAllRead(ctx context.Context, tenantID, role string) (int64, error) {
	query := `
		UPDATE notifications
		SET status = 'read'
		WHERE tenant_id = $1 AND status = 'unread'
		  AND ($2::text = '' OR target_role = 'all' OR target_role = $2);
    `

	res, err := r.db.ExecContext(ctx, query, tenantID, role)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// CountUnread returns the number of unread records of the tenant visible to
// role. An empty role counts the whole tenant.
func (r *Repository) CountUnread(ctx context.Context, tenantID, role string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE tenant_id = $1 AND status = 'unread'
		  AND ($2::text = '' OR target_role = 'all' OR target_role = $2);
    `

	var n int64
	if err := r.db.QueryRowContext(ctx, query, tenantID, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return n, nil
}

// List retrieves the tenant's records, newest first.
func (r *Repository) List(ctx context.Context, f Filter) ([]model.NotificationRecord, error) {
	query := `
		SELECT id, tenant_id, type, title, message, target_role, status,
		       module, entity_id, action_url, actor_name, actor_role, created_at
		FROM notifications
		WHERE tenant_id = $1
		  AND ($2::text = '' OR target_role = 'all' OR target_role = $2)
		  AND ($3::text = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4;
    `

	rows, err := r.db.QueryContext(ctx, query, f.TenantID, f.Role, f.Status, f.limit())
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	records := make([]model.NotificationRecord, 0)
	for rows.Next() {
		var n model.NotificationRecord
		if err := rows.Scan(
			&n.ID, &n.TenantID, &n.Type, &n.Title, &n.Message, &n.TargetRole, &n.Status,
			&n.Module, &n.EntityID, &n.ActionURL, &n.ActorName, &n.ActorRole, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		records = append(records, n)
	}

	return records, rows.Err()
}

package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// SQLiteRepository stores notification records in a local SQLite database.
// It serves single-node deployments and tests that need a real store.
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository opens (or creates) the database at path and applies
// pending migrations. ":memory:" gives a private in-memory database.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	r := &SQLiteRepository{db: db}
	if err := r.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return r, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := r.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		if err := r.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range sqliteMigrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := r.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if _, err := r.db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Create inserts a new record and returns its ID.
func (r *SQLiteRepository) Create(ctx context.Context, rec model.NotificationRecord) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notifications (
			id, tenant_id, type, title, message, target_role, status,
			module, entity_id, action_url, actor_name, actor_role, created_at
		) VALUES (
			:id, :tenant_id, :type, :title, :message, :target_role, :status,
			:module, :entity_id, :action_url, :actor_name, :actor_role, :created_at
		)`, rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating notification: %w", err)
	}

	return rec.ID, nil
}

// MarkRead marks one record of the tenant as read.
func (r *SQLiteRepository) MarkRead(ctx context.Context, tenantID string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET status = 'read' WHERE id = ? AND tenant_id = ?", id, tenantID)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread record of the tenant visible to role as read.
func (r *SQLiteRepository) MarkAllRead(ctx context.Context, tenantID, role string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET status = 'read'
		WHERE tenant_id = ? AND status = 'unread'
		  AND (? = '' OR target_role = 'all' OR target_role = ?)`,
		tenantID, role, role)
	if err != nil {
		return 0, fmt.Errorf("marking all notifications read: %w", err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// CountUnread returns the number of unread records of the tenant visible to role.
func (r *SQLiteRepository) CountUnread(ctx context.Context, tenantID, role string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM notifications
		WHERE tenant_id = ? AND status = 'unread'
		  AND (? = '' OR target_role = 'all' OR target_role = ?)`,
		tenantID, role, role)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return n, nil
}

// List retrieves the tenant's records, newest first.
func (r *SQLiteRepository) List(ctx context.Context, f Filter) ([]model.NotificationRecord, error) {
	records := make([]model.NotificationRecord, 0)
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, tenant_id, type, title, message, target_role, status,
		       module, entity_id, action_url, actor_name, actor_role, created_at
		FROM notifications
		WHERE tenant_id = ?
		  AND (? = '' OR target_role = 'all' OR target_role = ?)
		  AND (? = '' OR status = ?)
		ORDER BY created_at DESC
		LIMIT ?`,
		f.TenantID, f.Role, f.Role, f.Status, f.Status, f.limit())
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return records, nil
}

package notification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

const (
	insertQuery = `
		INSERT INTO notifications (
		    tenant_id, type, title, message, target_role, status,
		    module, entity_id, action_url, actor_name, actor_role, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;
    `
	markReadQuery = `
		UPDATE notifications
		SET status = 'read'
		WHERE id = $1 AND tenant_id = $2;
    `
	markAllQuery = `
		UPDATE notifications
		SET status = 'read'
		WHERE tenant_id = $1 AND status = 'unread'
		  AND ($2::text = '' OR target_role = 'all' OR target_role = $2);
    `
	countQuery = `
		SELECT COUNT(*)
		FROM notifications
		WHERE tenant_id = $1 AND status = 'unread'
		  AND ($2::text = '' OR target_role = 'all' OR target_role = $2);
    `
)

var listColumns = []string{
	"id", "tenant_id", "type", "title", "message", "target_role", "status",
	"module", "entity_id", "action_url", "actor_name", "actor_role", "created_at",
}

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func sampleRecord() model.NotificationRecord {
	return model.NotificationRecord{
		TenantID:   "T1",
		Type:       model.EventAttendanceMarked,
		Title:      "Attendance marked",
		Message:    "Class 5A attendance submitted",
		TargetRole: model.TargetAll,
		Status:     model.StatusUnread,
		Module:     "attendance",
		ActorName:  "Admin",
		ActorRole:  "admin",
		CreatedAt:  time.Now(),
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	rec := sampleRecord()

	mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
		WithArgs(rec.TenantID, rec.Type, rec.Title, rec.Message, rec.TargetRole, rec.Status,
			rec.Module, rec.EntityID, rec.ActionURL, rec.ActorName, rec.ActorRole, rec.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	got, err := repo.Create(context.Background(), rec)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Error(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
		WillReturnError(errors.New("connection refused"))

	got, err := repo.Create(context.Background(), sampleRecord())
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, uuid.Nil, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(markReadQuery)).
		WithArgs(id, "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkRead(context.Background(), "T1", id))
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(markReadQuery)).
		WithArgs(id, "T2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), "T2", id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllRead(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(markAllQuery)).
		WithArgs("T1", "").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(markAllQuery)).
		WithArgs("T1", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkAllRead(context.Background(), "T1", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.MarkAllRead(context.Background(), "T1", "")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnread(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs("T1", "teacher").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountUnread(context.Background(), "T1", "teacher")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := setupMockDB(t)

	r1, r2 := sampleRecord(), sampleRecord()
	r1.ID, r2.ID = uuid.New(), uuid.New()
	r2.TargetRole = "teacher"

	rows := sqlmock.NewRows(listColumns)
	for _, r := range []model.NotificationRecord{r1, r2} {
		rows.AddRow(r.ID, r.TenantID, string(r.Type), r.Title, r.Message, r.TargetRole, r.Status,
			r.Module, r.EntityID, r.ActionURL, r.ActorName, r.ActorRole, r.CreatedAt)
	}

	mock.ExpectQuery(`SELECT id, tenant_id, type`).
		WithArgs("T1", "teacher", "", DefaultListLimit).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), Filter{TenantID: "T1", Role: "teacher"})
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, r2.ID, list[1].ID)
	assert.Equal(t, model.EventAttendanceMarked, list[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`SELECT id, tenant_id, type`).
		WithArgs("T1", "", model.StatusUnread, 10).
		WillReturnRows(sqlmock.NewRows(listColumns))

	list, err = repo.List(context.Background(), Filter{TenantID: "T1", Status: model.StatusUnread, Limit: 10})
	assert.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

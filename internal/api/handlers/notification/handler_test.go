package notification

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	mocks "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/mocks/api/handlers/notification"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	repo "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/repository/notification"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocknotificationService, *config.Config) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMocknotificationService(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{Attempts: 1}}
	handler := NewHandler(mockService, cfg)
	return handler, mockService, cfg
}

func newContext(method, target, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	middlewares.WithIdentity(c, middlewares.Identity{
		TenantID: "T1",
		Actor:    model.Actor{ID: "U1", Name: "Teacher", Role: role},
	})
	return c, w
}

func TestHandler_List_RoleFiltered(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications?status=unread&limit=10", "teacher")

	mockService.EXPECT().
		List(gomock.Any(), repo.Filter{TenantID: "T1", Role: "teacher", Status: model.StatusUnread, Limit: 10}).
		Return([]model.NotificationRecord{{ID: uuid.New(), TenantID: "T1"}}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_List_AdminSeesEverything(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications", model.RoleAdmin)

	mockService.EXPECT().
		List(gomock.Any(), repo.Filter{TenantID: "T1"}).
		Return([]model.NotificationRecord{}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":[]}`, w.Body.String())
}

func TestHandler_List_InvalidStatus(t *testing.T) {
	handler, _, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications?status=archived", "teacher")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_List_InvalidLimit(t *testing.T) {
	handler, _, _ := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications?limit=abc", "teacher")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_List_MissingIdentity(t *testing.T) {
	handler, _, _ := setupHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)

	handler.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_UnreadCount_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications/unread-count", "teacher")

	mockService.EXPECT().UnreadCount(gomock.Any(), cfg.Retry, "T1", "teacher").Return(int64(7), nil)

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"unread":7}}`, w.Body.String())
}

func TestHandler_UnreadCount_Error(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	c, w := newContext(http.MethodGet, "/api/notifications/unread-count", "teacher")

	mockService.EXPECT().UnreadCount(gomock.Any(), cfg.Retry, "T1", "teacher").Return(int64(0), errors.New("db down"))

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_MarkRead_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()
	c, w := newContext(http.MethodPatch, "/api/notifications/"+id.String()+"/read", "teacher")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().MarkRead(gomock.Any(), cfg.Retry, "T1", id).Return(nil).Times(2)

	handler.MarkRead(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second call on the same record succeeds as well.
	c, w = newContext(http.MethodPatch, "/api/notifications/"+id.String()+"/read", "teacher")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	handler.MarkRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_MarkRead_NotFound(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()
	c, w := newContext(http.MethodPatch, "/", "teacher")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().MarkRead(gomock.Any(), cfg.Retry, "T1", id).Return(repo.ErrNotificationNotFound)

	handler.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_MarkRead_InvalidID(t *testing.T) {
	handler, _, _ := setupHandler(t)
	c, w := newContext(http.MethodPatch, "/", "teacher")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	handler.MarkRead(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MarkAllRead(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)

	gomock.InOrder(
		mockService.EXPECT().MarkAllRead(gomock.Any(), cfg.Retry, "T1", "teacher").Return(int64(4), nil),
		mockService.EXPECT().MarkAllRead(gomock.Any(), cfg.Retry, "T1", "teacher").Return(int64(0), nil),
	)

	c, w := newContext(http.MethodPatch, "/api/notifications/read-all", "teacher")
	handler.MarkAllRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"updated":4}}`, w.Body.String())

	c, w = newContext(http.MethodPatch, "/api/notifications/read-all", "teacher")
	handler.MarkAllRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"updated":0}}`, w.Body.String())
}

func TestHandler_AdminCountsAndClearsWholeTenant(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)

	mockService.EXPECT().UnreadCount(gomock.Any(), cfg.Retry, "T1", "").Return(int64(12), nil)
	mockService.EXPECT().MarkAllRead(gomock.Any(), cfg.Retry, "T1", "").Return(int64(12), nil)

	c, w := newContext(http.MethodGet, "/api/notifications/unread-count", model.RoleAdmin)
	handler.UnreadCount(c)
	assert.JSONEq(t, `{"result":{"unread":12}}`, w.Body.String())

	c, w = newContext(http.MethodPatch, "/api/notifications/read-all", model.RoleAdmin)
	handler.MarkAllRead(c)
	assert.JSONEq(t, `{"result":{"updated":12}}`, w.Body.String())
}

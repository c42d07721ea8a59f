package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/realtime"
)

type fakeGateway struct {
	topics []string
}

func (g *fakeGateway) ServeWS(_ http.ResponseWriter, _ *http.Request, topics []string) {
	g.topics = topics
}

func TestTopics(t *testing.T) {
	got := Topics(middlewares.Identity{
		TenantID: "T1",
		Actor:    model.Actor{ID: "U1", Role: "teacher"},
	})

	assert.Equal(t, []string{"tenant:T1", "role:T1:teacher", "user:U1"}, got)
}

func TestTopics_AdminFollowsActivityFeed(t *testing.T) {
	got := Topics(middlewares.Identity{
		TenantID: "T1",
		Actor:    model.Actor{ID: "A1", Role: model.RoleAdmin},
	})

	assert.Equal(t, []string{"activity:T1", "user:A1"}, got)
}

func TestTopics_Anonymous(t *testing.T) {
	got := Topics(middlewares.Identity{TenantID: "T1"})

	assert.Equal(t, []string{"tenant:T1"}, got)
}

func TestTopics_RoleTargetedEventReachesOnlyThatRole(t *testing.T) {
	hub := realtime.NewHub(8)
	admin := hub.Subscribe(Topics(middlewares.Identity{TenantID: "T1", Actor: model.Actor{ID: "A1", Role: model.RoleAdmin}})...)
	teacher := hub.Subscribe(Topics(middlewares.Identity{TenantID: "T1", Actor: model.Actor{ID: "U1", Role: "teacher"}})...)
	student := hub.Subscribe(Topics(middlewares.Identity{TenantID: "T1", Actor: model.Actor{ID: "U2", Role: "student"}})...)
	defer admin.Close()
	defer teacher.Close()
	defer student.Close()

	r := realtime.NewRouter(func() realtime.Broker { return hub })
	r.Route(context.Background(), model.Event{ID: uuid.New(), TenantID: "T1", TargetRole: "teacher"})

	assert.Len(t, admin.C(), 1)
	assert.Len(t, teacher.C(), 1)
	assert.Len(t, student.C(), 0)
}

func TestHandler_Subscribe(t *testing.T) {
	g := &fakeGateway{}
	h := NewHandler(g)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ws", nil)
	middlewares.WithIdentity(c, middlewares.Identity{TenantID: "T1", Actor: model.Actor{ID: "U1"}})

	h.Subscribe(c)

	assert.Equal(t, []string{"tenant:T1", "user:U1"}, g.topics)
}

func TestHandler_Subscribe_MissingIdentity(t *testing.T) {
	g := &fakeGateway{}
	h := NewHandler(g)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ws", nil)

	h.Subscribe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, g.topics)
}

package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DeliversToSubscribedTopicsOnly(t *testing.T) {
	h := NewHub(4)
	tenant := h.Subscribe("tenant:T1")
	other := h.Subscribe("tenant:T2")
	defer tenant.Close()
	defer other.Close()

	ev := testEvent()
	require.NoError(t, h.Publish(context.Background(), "tenant:T1", ev))

	select {
	case msg := <-tenant.C():
		assert.Equal(t, "tenant:T1", msg.Topic)
		assert.Equal(t, ev.ID, msg.Event.ID)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	select {
	case <-other.C():
		t.Fatal("unexpected delivery to other tenant")
	default:
	}
}

func TestHub_NoReplayForLateSubscribers(t *testing.T) {
	h := NewHub(4)
	require.NoError(t, h.Publish(context.Background(), "tenant:T1", testEvent()))

	late := h.Subscribe("tenant:T1")
	defer late.Close()

	select {
	case <-late.C():
		t.Fatal("late subscriber received an old event")
	default:
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe("tenant:T1")
	defer s.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			_ = h.Publish(context.Background(), "tenant:T1", testEvent())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, s.C(), 1)
}

func TestHub_CloseRemovesSubscription(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe("tenant:T1", "activity:T1")
	assert.Equal(t, 1, h.Subscribers("activity:T1"))

	s.Close()
	s.Close()

	assert.Zero(t, h.Subscribers("tenant:T1"))
	assert.Zero(t, h.Subscribers("activity:T1"))
	_, ok := <-s.C()
	assert.False(t, ok)
}

func TestServeWS_StreamsMessages(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, []string{"tenant:T1"})
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers("tenant:T1") == 1 }, time.Second, 10*time.Millisecond)

	ev := testEvent()
	require.NoError(t, h.Publish(context.Background(), "tenant:T1", ev))

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "tenant:T1", msg.Topic)
	assert.Equal(t, ev.ID, msg.Event.ID)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.Subscribers("tenant:T1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSeenSet_DropsRepeatsWithinWindow(t *testing.T) {
	s := newSeenSet(2)
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.True(t, s.add(a))
	assert.False(t, s.add(a))
	assert.True(t, s.add(b))
	assert.True(t, s.add(c))
	// a fell out of the window.
	assert.True(t, s.add(a))
}

func TestServeWS_OneCopyPerEvent(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, []string{"activity:T1", "user:A1"})
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers("user:A1") == 1 }, time.Second, 10*time.Millisecond)

	first, second := testEvent(), testEvent()
	require.NoError(t, h.Publish(context.Background(), "user:A1", first))
	require.NoError(t, h.Publish(context.Background(), "activity:T1", first))
	require.NoError(t, h.Publish(context.Background(), "activity:T1", second))

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, first.ID, msg.Event.ID)
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, second.ID, msg.Event.ID)
}

func TestServeWS_RejectsUnknownOrigin(t *testing.T) {
	h := NewHub(4, "https://erp.example.edu")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, []string{"tenant:T1"})
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://erp.example.edu"}})
	require.NoError(t, err)
	_ = conn.Close()
}

func TestServeWS_DefaultsToSameOrigin(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, []string{"tenant:T1"})
	}))
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"),
		http.Header{"Origin": {"https://elsewhere.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

package realtime

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/zlog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// recentEvents is how many event ids a connection remembers to drop copies
// that arrive on more than one of its topics.
const recentEvents = 64

func newUpgrader(allowed []string) websocket.Upgrader {
	u := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	if len(allowed) == 0 {
		return u
	}

	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}
	_, wildcard := origins["*"]

	u.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		_, ok := origins[origin]
		return ok
	}
	return u
}

// seenSet remembers the last few event ids written to one connection.
type seenSet struct {
	ids  map[uuid.UUID]struct{}
	ring []uuid.UUID
	next int
}

func newSeenSet(size int) *seenSet {
	return &seenSet{ids: make(map[uuid.UUID]struct{}, size), ring: make([]uuid.UUID, size)}
}

// add records id and reports whether it was new.
func (s *seenSet) add(id uuid.UUID) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	delete(s.ids, s.ring[s.next])
	s.ring[s.next] = id
	s.ids[id] = struct{}{}
	s.next = (s.next + 1) % len(s.ring)
	return true
}

// ServeWS upgrades the request and streams messages for topics until the
// client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, topics []string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := h.Subscribe(topics...)
	zlog.Logger.Info().Strs("topics", topics).Msg("websocket subscriber connected")

	done := make(chan struct{})
	go readLoop(conn, done)
	writeLoop(conn, sub, done)

	sub.Close()
	_ = conn.Close()
	zlog.Logger.Info().Strs("topics", topics).Msg("websocket subscriber disconnected")
}

// readLoop discards client frames and signals when the connection drops.
func readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeLoop(conn *websocket.Conn, sub *Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	seen := newSeenSet(recentEvents)

	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			if !seen.add(msg.Event.ID) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				zlog.Logger.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

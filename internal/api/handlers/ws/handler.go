package ws

import (
	"fmt"
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/realtime"
)

type gateway interface {
	ServeWS(w http.ResponseWriter, r *http.Request, topics []string)
}

// Handler upgrades clients to a websocket subscribed to their own topics.
type Handler struct {
	gateway gateway
}

// NewHandler creates a new Handler instance.
func NewHandler(g gateway) *Handler {
	return &Handler{gateway: g}
}

// Topics returns the topics a connected user receives. Admins follow the
// tenant activity feed, which carries every event of the tenant; everyone
// else gets tenant-wide events and those for their role. Both also get their
// personal topic.
func Topics(id middlewares.Identity) []string {
	var topics []string
	if id.Actor.Role == model.RoleAdmin {
		topics = append(topics, realtime.ActivityTopic(id.TenantID))
	} else {
		topics = append(topics, realtime.TenantTopic(id.TenantID))
		if id.Actor.Role != "" {
			topics = append(topics, realtime.RoleTopic(id.TenantID, id.Actor.Role))
		}
	}
	if id.Actor.ID != "" {
		topics = append(topics, realtime.UserTopic(id.Actor.ID))
	}
	return topics
}

// Subscribe handles websocket upgrade requests.
func (h *Handler) Subscribe(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	h.gateway.ServeWS(c.Writer, c.Request, Topics(id))
}

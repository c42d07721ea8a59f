package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/alert"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/broadcast"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/notification"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/handlers/ws"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/metrics"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Notification *notification.Handler
	Event        *event.Handler
	Alert        *alert.Handler
	Broadcast    *broadcast.Handler
	WS           *ws.Handler
}

func New(h Handlers) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/metrics", gin.WrapH(metrics.Handler()))
	e.GET("/ws", middlewares.IdentityMiddleware(), h.WS.Subscribe)

	api := e.Group("/api", middlewares.IdentityMiddleware())
	{
		api.POST("/events", h.Event.Trigger)

		api.GET("/notifications", h.Notification.List)
		api.GET("/notifications/unread-count", h.Notification.UnreadCount)
		api.PATCH("/notifications/read-all", h.Notification.MarkAllRead)
		api.PATCH("/notifications/:id/read", h.Notification.MarkRead)

		api.POST("/alerts/emergency", h.Alert.Emergency)
		api.POST("/alerts/absence", h.Alert.Absence)

		api.POST("/broadcasts", h.Broadcast.Enqueue)
	}

	return e
}

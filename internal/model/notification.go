package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification read states.
const (
	StatusUnread = "unread"
	StatusRead   = "read"
)

// NotificationRecord is the durable, tenant-scoped copy of an Event.
type NotificationRecord struct {
	ID         uuid.UUID `json:"id" db:"id"`                   // unique identifier of the record
	TenantID   string    `json:"tenant_id" db:"tenant_id"`     // owning institution
	Type       EventType `json:"type" db:"type"`               // event category, e.g. "attendance:marked"
	Title      string    `json:"title" db:"title"`             // short headline
	Message    string    `json:"message" db:"message"`         // body text
	TargetRole string    `json:"target_role" db:"target_role"` // "all" or a specific role
	Status     string    `json:"status" db:"status"`           // "unread" or "read"
	Module     string    `json:"module" db:"module"`           // business module that raised the event
	EntityID   string    `json:"entity_id" db:"entity_id"`     // affected entity, may be empty
	ActionURL  string    `json:"action_url" db:"action_url"`   // deep link, may be empty
	ActorName  string    `json:"actor_name" db:"actor_name"`   // display name of whoever triggered it
	ActorRole  string    `json:"actor_role" db:"actor_role"`   // role of whoever triggered it
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // creation timestamp
}

// RecordFromEvent mirrors an Event into a fresh unread record.
func RecordFromEvent(ev Event) NotificationRecord {
	return NotificationRecord{
		TenantID:   ev.TenantID,
		Type:       ev.Type,
		Title:      ev.Title,
		Message:    ev.Message,
		TargetRole: ev.TargetRole,
		Status:     StatusUnread,
		Module:     ev.Module,
		EntityID:   ev.EntityID,
		ActionURL:  ev.ActionURL,
		ActorName:  ev.Actor.Name,
		ActorRole:  ev.Actor.Role,
		CreatedAt:  ev.Timestamp,
	}
}

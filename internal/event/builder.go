// Package event builds fully populated in-app events from partial business
// triggers. Building performs no I/O.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

var (
	// ErrUnknownType is returned for types outside the event taxonomy.
	ErrUnknownType = errors.New("unknown event type")
	// ErrMissingTenant is returned when the trigger carries no tenant.
	ErrMissingTenant = errors.New("tenant id is required")
)

// Input is a business trigger as issued by a handler after a successful
// mutation. Everything except Type and TenantID is optional.
type Input struct {
	Type         model.EventType `json:"type" validate:"required"`
	TenantID     string          `json:"tenant_id"`
	Title        string          `json:"title" validate:"max=255"`
	Message      string          `json:"message"`
	Module       string          `json:"module,omitempty"`
	EntityID     string          `json:"entity_id,omitempty"`
	ActionURL    string          `json:"action_url,omitempty"`
	TargetRole   string          `json:"target_role,omitempty"`
	TargetUserID string          `json:"target_user_id,omitempty"`
	Actor        *model.Actor    `json:"actor,omitempty"`
	Metadata     map[string]any  `json:"metadata,omitempty"`
}

// Builder turns an Input into a model.Event.
type Builder struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// NewBuilder creates a Builder using the wall clock and random ids.
func NewBuilder() *Builder {
	return &Builder{now: time.Now, newID: uuid.New}
}

// Build validates the type and tenant and fills every optional field with its
// default: actor name "System", empty actor role, target role "all", module
// taken from the type's domain, empty metadata.
func (b *Builder) Build(in Input) (model.Event, error) {
	if !in.Type.Valid() {
		return model.Event{}, ErrUnknownType
	}
	if strings.TrimSpace(in.TenantID) == "" {
		return model.Event{}, ErrMissingTenant
	}

	actor := model.SystemActor
	if in.Actor != nil {
		actor = *in.Actor
		if actor.Name == "" {
			actor.Name = model.SystemActor.Name
		}
	}

	targetRole := in.TargetRole
	if targetRole == "" {
		targetRole = model.TargetAll
	}

	module := in.Module
	if module == "" {
		module, _, _ = strings.Cut(string(in.Type), ":")
	}

	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return model.Event{
		ID:           b.newID(),
		Type:         in.Type,
		TenantID:     in.TenantID,
		Title:        in.Title,
		Message:      in.Message,
		Module:       module,
		EntityID:     in.EntityID,
		ActionURL:    in.ActionURL,
		TargetRole:   targetRole,
		TargetUserID: in.TargetUserID,
		Actor:        actor,
		Timestamp:    b.now().UTC(),
		Metadata:     metadata,
	}, nil
}

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/event/mock.go -package=mocks
type eventTrigger interface {
	Trigger(ctx context.Context, in event.Input, opts ...emitter.Option) (model.Event, error)
}

// Handler accepts business events from the CRUD layer.
type Handler struct {
	events    eventTrigger
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(e eventTrigger, v *validator.Validate) *Handler {
	return &Handler{events: e, validator: v}
}

// TriggerRequest is the JSON body of POST /api/events.
type TriggerRequest struct {
	Type         string         `json:"type" validate:"required"`
	Title        string         `json:"title" validate:"required"`
	Message      string         `json:"message" validate:"required"`
	Module       string         `json:"module"`
	EntityID     string         `json:"entity_id"`
	ActionURL    string         `json:"action_url"`
	TargetRole   string         `json:"target_role"`
	TargetUserID string         `json:"target_user_id"`
	Metadata     map[string]any `json:"metadata"`
	Persist      *bool          `json:"persist"` // false when the caller stores its own record
}

// TriggerResponse identifies the accepted event.
type TriggerResponse struct {
	ID   uuid.UUID       `json:"id"`
	Type model.EventType `json:"type"`
}

// Trigger handles HTTP POST requests announcing a business event.
//
// The event is built from the body and the caller's identity, then its
// realtime fan-out and durable write are launched. The response does not wait
// for either and is 202 whenever the event itself is well formed.
func (h *Handler) Trigger(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	var req TriggerRequest

	// Decode JSON request body into TriggerRequest struct.
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	// Validate request fields using go-playground/validator.
	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	actor := id.Actor
	in := event.Input{
		Type:         model.EventType(req.Type),
		TenantID:     id.TenantID,
		Title:        req.Title,
		Message:      req.Message,
		Module:       req.Module,
		EntityID:     req.EntityID,
		ActionURL:    req.ActionURL,
		TargetRole:   req.TargetRole,
		TargetUserID: req.TargetUserID,
		Actor:        &actor,
		Metadata:     req.Metadata,
	}

	var opts []emitter.Option
	if req.Persist != nil && !*req.Persist {
		opts = append(opts, emitter.WithoutPersist())
	}

	ev, err := h.events.Trigger(c.Request.Context(), in, opts...)
	if err != nil {
		if errors.Is(err, event.ErrUnknownType) || errors.Is(err, event.ErrMissingTenant) {
			zlog.Logger.Warn().Err(err).Str("type", req.Type).Msg("rejected event")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("type", req.Type).Msg("failed to trigger event")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Accepted(c.Writer, TriggerResponse{ID: ev.ID, Type: ev.Type})
}

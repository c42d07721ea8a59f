package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// dateLayout is the accepted format of request dates.
const dateLayout = time.DateOnly

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/alert/mock.go -package=mocks
type alertCatalog interface {
	Absence(ctx context.Context, rawPhone, guardian, student string, date time.Time) dispatcher.Result
	EmergencyBroadcast(ctx context.Context, recipients []model.Recipient, title, details string) bulk.Summary
}

type eventTrigger interface {
	Trigger(ctx context.Context, in event.Input, opts ...emitter.Option) (model.Event, error)
}

// Handler sends templated alerts over the external messaging channels.
type Handler struct {
	catalog   alertCatalog
	events    eventTrigger
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(c alertCatalog, e eventTrigger, v *validator.Validate) *Handler {
	return &Handler{catalog: c, events: e, validator: v}
}

// EmergencyRequest is the JSON body of POST /api/alerts/emergency.
type EmergencyRequest struct {
	Title      string            `json:"title" validate:"required"`
	Details    string            `json:"details" validate:"required"`
	Recipients []model.Recipient `json:"recipients" validate:"required,min=1,dive"`
}

// AbsenceRequest is the JSON body of POST /api/alerts/absence.
type AbsenceRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Guardian string `json:"guardian"`
	Student  string `json:"student" validate:"required"`
	Date     string `json:"date" validate:"required"` // YYYY-MM-DD
}

// Emergency handles HTTP POST requests broadcasting an emergency alert.
//
// Recipients are messaged one at a time and the call returns once all have
// been attempted, with a per-recipient report. The run is detached from the
// request: a client that goes away does not stop it. An in-app emergency
// event is emitted for the whole tenant as well.
func (h *Handler) Emergency(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	var req EmergencyRequest
	if !h.decode(c, &req) {
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	summary := h.catalog.EmergencyBroadcast(ctx, req.Recipients, req.Title, req.Details)

	zlog.Logger.Info().
		Str("tenant_id", id.TenantID).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("emergency alert sent")

	actor := id.Actor
	_, err := h.events.Trigger(ctx, event.Input{
		Type:     model.EventEmergencyDeclared,
		TenantID: id.TenantID,
		Title:    req.Title,
		Message:  req.Details,
		Module:   "communication",
		Actor:    &actor,
		Metadata: map[string]any{"sent": summary.Sent, "failed": summary.Failed},
	})
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to emit emergency event")
	}

	respond.OK(c.Writer, summary)
}

// Absence handles HTTP POST requests notifying a guardian of an absence.
//
// Delivery failures are reported in the per-channel result with status 200;
// only malformed requests are rejected.
func (h *Handler) Absence(c *ginext.Context) {
	if _, ok := middlewares.IdentityFrom(c); !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	var req AbsenceRequest
	if !h.decode(c, &req) {
		return
	}

	// Parse the absence date.
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("date", req.Date).Msg("failed to parse date")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid date format"))
		return
	}

	result := h.catalog.Absence(c.Request.Context(), req.Phone, req.Guardian, req.Student, date)

	respond.OK(c.Writer, result)
}

func (h *Handler) decode(c *ginext.Context, dst any) bool {
	// Decode JSON request body.
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return false
	}

	// Validate request fields using go-playground/validator.
	if err := h.validator.Struct(dst); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return false
	}

	return true
}

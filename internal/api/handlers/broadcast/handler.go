package broadcast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/api/respond"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/middlewares"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/broadcast/mock.go -package=mocks
type jobPublisher interface {
	Publish(job queue.BroadcastJob, strategy retry.Strategy) error
}

// Handler enqueues announcement broadcasts.
type Handler struct {
	queue     jobPublisher
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance. q may be nil when no broker is
// configured; requests are then refused with 503.
func NewHandler(q jobPublisher, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{queue: q, validator: v, cfg: cfg}
}

// EnqueueResponse identifies the queued job.
type EnqueueResponse struct {
	JobID      uuid.UUID `json:"job_id"`
	Recipients int       `json:"recipients"`
}

// Enqueue handles HTTP POST requests for a cohort broadcast.
//
// The request is validated and queued; the recipients are messaged later by
// the broadcast worker, which notifies the requester in-app when done.
func (h *Handler) Enqueue(c *ginext.Context) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing tenant"))
		return
	}

	if h.queue == nil {
		respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("broadcast queue not configured"))
		return
	}

	var req catalog.BroadcastRequest

	// Decode JSON request body into BroadcastRequest struct.
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

	job := queue.BroadcastJob{
		ID:          uuid.New(),
		TenantID:    id.TenantID,
		RequestedBy: id.Actor,
		Request:     req,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.queue.Publish(job, h.cfg.Retry); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish broadcast job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("kind", req.Kind).
		Int("recipients", len(req.Recipients)).
		Msg("broadcast job queued")

	respond.Accepted(c.Writer, EnqueueResponse{JobID: job.ID, Recipients: len(req.Recipients)})
}

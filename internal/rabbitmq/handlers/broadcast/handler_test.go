package broadcast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/event"
	mocks "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/mocks/rabbitmq/handlers/broadcast"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/rabbitmq/queue"
)

func testJob() queue.BroadcastJob {
	return queue.BroadcastJob{
		ID:          uuid.New(),
		TenantID:    "T1",
		RequestedBy: model.Actor{ID: "U7", Name: "Principal", Role: "admin"},
		Request: catalog.BroadcastRequest{
			Kind:  catalog.KindEmergency,
			Title: "School closed",
			Recipients: []model.Recipient{
				{Phone: "9876543210", Name: "Ravi"},
				{Phone: "12", Name: "Asha"},
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestHandler_HandleMessage_ReportsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockbroadcaster(ctrl)
	mockEvents := mocks.NewMockeventTrigger(ctrl)
	h := NewHandler(mockCatalog, mockEvents)

	job := testJob()

	mockCatalog.EXPECT().Broadcast(gomock.Any(), job.Request).Return(bulk.Summary{Sent: 1, Failed: 1})
	mockEvents.EXPECT().Trigger(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in event.Input, _ ...emitter.Option) (model.Event, error) {
			assert.Equal(t, model.EventBroadcastCompleted, in.Type)
			assert.Equal(t, "T1", in.TenantID)
			assert.Equal(t, "U7", in.TargetUserID)
			assert.Equal(t, job.ID.String(), in.EntityID)
			assert.Equal(t, 1, in.Metadata["sent"])
			assert.Equal(t, 1, in.Metadata["failed"])
			assert.Contains(t, in.Message, "1 of 2")
			return model.Event{}, nil
		})

	h.HandleMessage(context.Background(), job)
}

func TestHandler_HandleMessage_TriggerErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mocks.NewMockbroadcaster(ctrl)
	mockEvents := mocks.NewMockeventTrigger(ctrl)
	h := NewHandler(mockCatalog, mockEvents)

	mockCatalog.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(bulk.Summary{Sent: 2})
	mockEvents.EXPECT().Trigger(gomock.Any(), gomock.Any()).
		Return(model.Event{}, errors.New("missing tenant")).Times(1)

	assert.NotPanics(t, func() {
		h.HandleMessage(context.Background(), testJob())
	})
}

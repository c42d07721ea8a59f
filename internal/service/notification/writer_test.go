package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/mocks/service/notification"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

func testEvent() model.Event {
	return model.Event{
		ID:         uuid.New(),
		Type:       model.EventAttendanceMarked,
		TenantID:   "T1",
		Title:      "Attendance marked",
		Message:    "5A submitted",
		Module:     "attendance",
		TargetRole: model.TargetAll,
		Actor:      model.Actor{ID: "A1", Name: "Admin", Role: "admin"},
		Timestamp:  time.Now().UTC(),
	}
}

func TestWriter_Write_PersistsUnreadRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMocknotificationRepository(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)
	w := NewWriter(repoMock, cacheMock, strategy, time.Second)

	ev := testEvent()
	repoMock.EXPECT().Create(gomock.Any(), model.RecordFromEvent(ev)).
		DoAndReturn(func(_ context.Context, rec model.NotificationRecord) (uuid.UUID, error) {
			assert.Equal(t, model.StatusUnread, rec.Status)
			assert.Equal(t, "T1", rec.TenantID)
			assert.Equal(t, "Admin", rec.ActorName)
			return uuid.New(), nil
		})
	repoMock.EXPECT().CountUnread(gomock.Any(), "T1", "").Return(int64(1), nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, "unread:T1", int64(1)).Return(nil)

	w.Write(context.Background(), ev)
}

func TestWriter_Write_StoreFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMocknotificationRepository(ctrl)
	w := NewWriter(repoMock, nil, strategy, time.Second)

	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("connection refused"))

	assert.NotPanics(t, func() { w.Write(context.Background(), testEvent()) })
}

func TestWriter_Write_PanicIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMocknotificationRepository(ctrl)
	w := NewWriter(repoMock, nil, strategy, time.Second)

	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.NotificationRecord) (uuid.UUID, error) {
			panic("nil pointer in driver")
		})

	assert.NotPanics(t, func() { w.Write(context.Background(), testEvent()) })
}

func TestWriter_Write_DetachedFromCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMocknotificationRepository(ctrl)
	w := NewWriter(repoMock, nil, strategy, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ model.NotificationRecord) (uuid.UUID, error) {
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return uuid.New(), nil
		})

	w.Write(ctx, testEvent())
}

func TestNewWriter_DefaultTimeout(t *testing.T) {
	w := NewWriter(nil, nil, strategy, 0)

	assert.Equal(t, DefaultWriteTimeout, w.timeout)
}

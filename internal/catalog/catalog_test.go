package catalog

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	mocks "github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/mocks/catalog"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

func delivered() dispatcher.Result {
	return dispatcher.Result{
		SMS:      model.DeliveryResult{Channel: model.ChannelSMS, Success: true, MessageID: "SM1"},
		WhatsApp: model.DeliveryResult{Channel: model.ChannelWhatsApp, Success: true, MessageID: "SM2"},
	}
}

func TestCatalog_Absence_NormalizesAndDispatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := mocks.NewMockrecipientSender(ctrl)
	d.EXPECT().
		SendToRecipient(gomock.Any(), "+919876543210", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg string) dispatcher.Result {
			assert.Contains(t, msg, "Arjun")
			assert.Contains(t, msg, "Absent")
			assert.Contains(t, msg, "Mrs. Rao")
			return delivered()
		})

	c := New(testMessages, d, nil, "91")
	res := c.Absence(context.Background(), "9876543210", "Mrs. Rao", "Arjun", day)

	assert.True(t, res.Delivered())
}

func TestCatalog_PassesFailuresThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notConfigured := dispatcher.Result{
		SMS:      model.Failed(model.ChannelSMS, dispatcher.ReasonNotConfigured),
		WhatsApp: model.Failed(model.ChannelWhatsApp, dispatcher.ReasonNotConfigured),
	}

	d := mocks.NewMockrecipientSender(ctrl)
	d.EXPECT().SendToRecipient(gomock.Any(), "+919812345678", gomock.Any()).Return(notConfigured)

	res := New(testMessages, d, nil, "91").FeeReminder(context.Background(), "+91 98123 45678", "A", "B", 100, day)

	assert.Equal(t, notConfigured, res)
}

func TestCatalog_EveryCategoryDispatchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := mocks.NewMockrecipientSender(ctrl)
	d.EXPECT().SendToRecipient(gomock.Any(), "+919876543210", gomock.Any()).Return(delivered()).Times(11)

	c := New(testMessages, d, nil, "91")
	ctx := context.Background()
	p := "9876543210"

	c.Absence(ctx, p, "g", "s", day)
	c.LowAttendance(ctx, p, "g", "s", 60, 75)
	c.FeeReminder(ctx, p, "g", "s", 10, day)
	c.FeeReceipt(ctx, p, "g", "s", 10, "R1", day)
	c.LeaveStatus(ctx, p, "e", "approved", day, day, "")
	c.SalaryProcessed(ctx, p, "e", day, 10)
	c.EmergencyAlert(ctx, p, "n", "t", "d")
	c.EventAnnouncement(ctx, p, "n", "t", day, "v")
	c.HolidayAnnouncement(ctx, p, "n", "o", day)
	c.ExamSchedule(ctx, p, "g", "s", "e", day)
	c.ResultPublished(ctx, p, "g", "s", "e", "pass")
}

func TestCatalog_Broadcast_PersonalisesPerRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recipients := []model.Recipient{
		{Phone: "9876543210", Name: "Mrs. Rao"},
		{Phone: "9812345678", Name: "Mr. Das"},
	}
	want := bulk.Summary{Sent: 2, Details: []bulk.Detail{{Success: true}, {Success: true}}}

	b := mocks.NewMockbulkSender(ctrl)
	b.EXPECT().SendBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []bulk.Item) bulk.Summary {
			require.Len(t, items, 2)
			assert.Equal(t, recipients[0], items[0].Recipient)
			assert.Contains(t, items[0].Message, "Dear Mrs. Rao")
			assert.Contains(t, items[1].Message, "Dear Mr. Das")
			assert.Contains(t, items[1].Message, "EMERGENCY ALERT: Gas leak")
			return want
		})

	sum := New(testMessages, nil, b, "91").Broadcast(context.Background(), BroadcastRequest{
		Kind:       KindEmergency,
		Title:      "Gas leak",
		Details:    "Evacuate block B.",
		Recipients: recipients,
	})

	assert.Equal(t, want, sum)
}

func TestCatalog_Broadcast_Kinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var got []string
	b := mocks.NewMockbulkSender(ctrl)
	b.EXPECT().SendBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []bulk.Item) bulk.Summary {
			got = append(got, items[0].Message)
			return bulk.Summary{Sent: 1}
		}).Times(2)

	c := New(testMessages, nil, b, "91")
	r := []model.Recipient{{Phone: "9876543210"}}

	c.Broadcast(context.Background(), BroadcastRequest{Kind: KindEvent, Title: "Sports Day", Date: day, Venue: "Ground", Recipients: r})
	c.Broadcast(context.Background(), BroadcastRequest{Kind: KindHoliday, Title: "Holi", Date: day, Recipients: r})
	sum := c.Broadcast(context.Background(), BroadcastRequest{Kind: "unknown", Recipients: r})

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Sports Day")
	assert.Contains(t, got[1], "Holi")
	assert.Zero(t, sum.Sent+sum.Failed)
}

func TestCatalog_Broadcast_SingleChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	both := mocks.NewMockbulkSender(ctrl)
	sms := mocks.NewMockbulkSender(ctrl)
	sms.EXPECT().SendBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []bulk.Item) bulk.Summary {
			require.Len(t, items, 1)
			assert.Contains(t, items[0].Message, "Holi")
			return bulk.Summary{Sent: 1, Details: []bulk.Detail{{Success: true}}}
		})

	c := New(testMessages, nil, both, "91", WithChannelSender(model.ChannelSMS, sms))
	sum := c.Broadcast(context.Background(), BroadcastRequest{
		Kind:       KindHoliday,
		Channel:    model.ChannelSMS,
		Title:      "Holi",
		Date:       day,
		Recipients: []model.Recipient{{Phone: "9876543210"}},
	})

	assert.Equal(t, 1, sum.Sent)
}

func TestCatalog_Broadcast_UnavailableChannelFailsEveryone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	both := mocks.NewMockbulkSender(ctrl)

	sum := New(testMessages, nil, both, "91").Broadcast(context.Background(), BroadcastRequest{
		Kind:       KindEmergency,
		Channel:    model.ChannelWhatsApp,
		Title:      "Gas leak",
		Recipients: []model.Recipient{{Phone: "9876543210", Name: "Ravi"}, {Phone: "9812345678"}},
	})

	assert.Equal(t, 0, sum.Sent)
	assert.Equal(t, 2, sum.Failed)
	require.Len(t, sum.Details, 2)
	assert.Equal(t, dispatcher.ReasonNoTransport, sum.Details[0].Error)
	assert.Equal(t, "Ravi", sum.Details[0].Name)
}

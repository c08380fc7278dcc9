package adapter

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockNotificationSender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewMockNotificationSender(zap.New(core))

	id, err := sender.SendEmail(context.Background(), "demo.client@amaris.com", "Subscription confirmed", "hello")
	require.NoError(t, err)
	assert.Contains(t, id, "em_mock_")

	id, err = sender.SendSMS(context.Background(), "+573001234567", "hello")
	require.NoError(t, err)
	assert.Contains(t, id, "sms_mock_")

	assert.Equal(t, 1, logs.FilterMessage("[MOCK EMAIL] message sent").Len())
	assert.Equal(t, 1, logs.FilterMessage("[MOCK SMS] message sent").Len())
}

func TestMockNotificationSender_EmptyRecipient(t *testing.T) {
	sender := NewMockNotificationSender(zap.NewNop())

	_, err := sender.SendEmail(context.Background(), "", "s", "b")
	assert.Error(t, err)
	_, err = sender.SendSMS(context.Background(), "", "b")
	assert.Error(t, err)
}

func TestMessages(t *testing.T) {
	amount := decimal.NewFromInt(75000)
	assert.Equal(t, "You have subscribed to DEUDAPRIVADA for 75000.00.", SubscribedMessage("DEUDAPRIVADA", amount))
	assert.Contains(t, CancelledMessage("DEUDAPRIVADA", amount), "75000.00 was returned")
}

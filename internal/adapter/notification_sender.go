package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationSender defines the Anti-Corruption Layer interface for outbound email and SMS.
// This abstraction decouples notification dispatch from any concrete provider API.
type NotificationSender interface {
	// SendEmail delivers a message to an email address and returns the provider message id.
	SendEmail(ctx context.Context, to, subject, body string) (string, error)

	// SendSMS delivers a text message to a phone number and returns the provider message id.
	SendSMS(ctx context.Context, phone, body string) (string, error)
}

// MockNotificationSender is a development/testing implementation of NotificationSender.
// It logs instead of contacting a provider.
type MockNotificationSender struct {
	logger *zap.Logger
}

// NewMockNotificationSender creates a new mock sender for development.
func NewMockNotificationSender(logger *zap.Logger) *MockNotificationSender {
	return &MockNotificationSender{logger: logger}
}

// SendEmail simulates sending an email.
func (m *MockNotificationSender) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	if to == "" {
		return "", fmt.Errorf("email recipient is empty")
	}
	messageID := fmt.Sprintf("em_mock_%s", uuid.New().String()[:8])

	m.logger.Info("[MOCK EMAIL] message sent",
		zap.String("message_id", messageID),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return messageID, nil
}

// SendSMS simulates sending a text message.
func (m *MockNotificationSender) SendSMS(ctx context.Context, phone, body string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("sms recipient is empty")
	}
	messageID := fmt.Sprintf("sms_mock_%s", uuid.New().String()[:8])

	m.logger.Info("[MOCK SMS] message sent",
		zap.String("message_id", messageID),
		zap.String("phone", phone),
		zap.String("body", body),
	)
	return messageID, nil
}

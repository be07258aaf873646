package mocks

import (
	"context"
	"sync"

	"github.com/bna-assurances/campaignhub/internal/domain"
)

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	SendFunc              func(ctx context.Context, to, subject, body string) error
	SendHTMLFunc          func(ctx context.Context, to, subject, htmlBody string) error
	SendCampaignFunc      func(ctx context.Context, to, title, message string) error
	SendPasswordResetFunc func(ctx context.Context, to, firstName, resetURL string) error
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

func (m *MockEmailService) SendCampaign(ctx context.Context, to, title, message string) error {
	if m.SendCampaignFunc != nil {
		return m.SendCampaignFunc(ctx, to, title, message)
	}
	return nil
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, to, firstName, resetURL string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(ctx, to, firstName, resetURL)
	}
	return nil
}

// MockSMSService is a mock implementation of SMSService
type MockSMSService struct {
	SendFunc func(ctx context.Context, to, body string) error
}

func (m *MockSMSService) Send(ctx context.Context, to, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, body)
	}
	return nil
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	RecordRecipientsFunc func(ctx context.Context, campaignID string, channel domain.Channel, recipients []domain.Recipient) error
	HistoryFunc          func(ctx context.Context, userID string) ([]domain.NotificationEntry, error)
	UnreadCountFunc      func(ctx context.Context, userID string) (int64, error)
	MarkAllReadFunc      func(ctx context.Context, userID string) error
	MarkReadFunc         func(ctx context.Context, userID, campaignID string) error
}

func (m *MockNotificationService) RecordRecipients(ctx context.Context, campaignID string, channel domain.Channel, recipients []domain.Recipient) error {
	if m.RecordRecipientsFunc != nil {
		return m.RecordRecipientsFunc(ctx, campaignID, channel, recipients)
	}
	return nil
}

func (m *MockNotificationService) History(ctx context.Context, userID string) ([]domain.NotificationEntry, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID)
	}
	return []domain.NotificationEntry{}, nil
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, campaignID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, campaignID)
	}
	return nil
}

// MockPusher records pushed payloads per user
type MockPusher struct {
	mu     sync.Mutex
	Pushed map[string][][]byte
}

func (m *MockPusher) PushToUser(userID string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Pushed == nil {
		m.Pushed = make(map[string][][]byte)
	}
	m.Pushed[userID] = append(m.Pushed[userID], payload)
}

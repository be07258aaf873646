package mocks

import (
	"context"

	"github.com/bna-assurances/campaignhub/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc             func(ctx context.Context, user *domain.User) error
	FindByIDFunc         func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	FindByResetTokenFunc func(ctx context.Context, tokenDigest string) (*domain.User, error)
	FindAllFunc          func(ctx context.Context) ([]domain.User, error)
	FindRecipientsFunc   func(ctx context.Context, criteria domain.Criteria) ([]domain.Recipient, error)
	UpdateFieldsFunc     func(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	DeleteFunc           func(ctx context.Context, id string) (bool, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, tokenDigest string) (*domain.User, error) {
	if m.FindByResetTokenFunc != nil {
		return m.FindByResetTokenFunc(ctx, tokenDigest)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserRepository) FindRecipients(ctx context.Context, criteria domain.Criteria) ([]domain.Recipient, error) {
	if m.FindRecipientsFunc != nil {
		return m.FindRecipientsFunc(ctx, criteria)
	}
	return []domain.Recipient{}, nil
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return true, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

// MockCampaignRepository is a mock implementation of CampaignRepository
type MockCampaignRepository struct {
	SaveFunc                  func(ctx context.Context, campaign *domain.Campaign) error
	FindByIDFunc              func(ctx context.Context, id string) (*domain.Campaign, error)
	FindAllWithSchedulerFunc  func(ctx context.Context) ([]domain.CampaignSummary, error)
	FindByIDWithSchedulerFunc func(ctx context.Context, id string) (*domain.CampaignSummary, error)
	UpdateFunc                func(ctx context.Context, campaign *domain.Campaign) error
	UpdateStatusIfFunc        func(ctx context.Context, id string, next domain.CampaignStatus, allowed ...domain.CampaignStatus) (bool, error)
	UpdateStatusFunc          func(ctx context.Context, id string, status domain.CampaignStatus) (bool, error)
	DeleteFunc                func(ctx context.Context, id string) (bool, error)
}

func (m *MockCampaignRepository) Save(ctx context.Context, campaign *domain.Campaign) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, campaign)
	}
	return nil
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCampaignRepository) FindAllWithScheduler(ctx context.Context) ([]domain.CampaignSummary, error) {
	if m.FindAllWithSchedulerFunc != nil {
		return m.FindAllWithSchedulerFunc(ctx)
	}
	return []domain.CampaignSummary{}, nil
}

func (m *MockCampaignRepository) FindByIDWithScheduler(ctx context.Context, id string) (*domain.CampaignSummary, error) {
	if m.FindByIDWithSchedulerFunc != nil {
		return m.FindByIDWithSchedulerFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, campaign)
	}
	return nil
}

func (m *MockCampaignRepository) UpdateStatusIf(ctx context.Context, id string, next domain.CampaignStatus, allowed ...domain.CampaignStatus) (bool, error) {
	if m.UpdateStatusIfFunc != nil {
		return m.UpdateStatusIfFunc(ctx, id, next, allowed...)
	}
	return true, nil
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return true, nil
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	InsertBatchFunc      func(ctx context.Context, records []domain.NotificationRecord) error
	FindByUserFunc       func(ctx context.Context, userID string) ([]domain.NotificationEntry, error)
	CountUnreadInAppFunc func(ctx context.Context, userID string) (int64, error)
	MarkAllReadFunc      func(ctx context.Context, userID string) error
	MarkReadFunc         func(ctx context.Context, userID, campaignID string) (bool, error)
}

func (m *MockNotificationRepository) InsertBatch(ctx context.Context, records []domain.NotificationRecord) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, records)
	}
	return nil
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID string) ([]domain.NotificationEntry, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return []domain.NotificationEntry{}, nil
}

func (m *MockNotificationRepository) CountUnreadInApp(ctx context.Context, userID string) (int64, error) {
	if m.CountUnreadInAppFunc != nil {
		return m.CountUnreadInAppFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, campaignID string) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, campaignID)
	}
	return true, nil
}

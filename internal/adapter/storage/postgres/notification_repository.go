package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type NotificationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNotificationRepository(db *gorm.DB, log *zap.Logger) ports.NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log,
	}
}

func (r *NotificationRepository) InsertBatch(ctx context.Context, records []domain.NotificationRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]domain.NotificationEntry, error) {
	var entries []domain.NotificationEntry
	err := r.db.WithContext(ctx).
		Table("notification_records").
		Select("campaigns.id AS campaign_id, campaigns.title, campaigns.message, campaigns.channel, notification_records.is_read, notification_records.created_at").
		Joins("INNER JOIN campaigns ON campaigns.id = notification_records.campaign_id").
		Where("notification_records.user_id = ?", userID).
		Order("notification_records.created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *NotificationRepository) CountUnreadInApp(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("notification_records").
		Joins("INNER JOIN campaigns ON campaigns.id = notification_records.campaign_id").
		Where("notification_records.user_id = ? AND notification_records.is_read = ? AND campaigns.channel = ?",
			userID, false, domain.ChannelInApp).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	inApp := r.db.Model(&domain.Campaign{}).
		Select("id").
		Where("channel = ?", domain.ChannelInApp)

	return r.db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("user_id = ? AND is_read = ? AND campaign_id IN (?)", userID, false, inApp).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, campaignID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("user_id = ? AND campaign_id = ? AND is_read = ?", userID, campaignID, false).
		Update("is_read", true)
	return tx.RowsAffected > 0, tx.Error
}

package notification

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/observability/telemetry"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

const (
	unreadKeyPrefix = "notifications:unread:"
	unreadCacheTTL  = 5 * time.Minute
)

type Service struct {
	notificationRepo ports.NotificationRepository
	cache            ports.Cache
	pusher           ports.NotificationPusher
	log              *zap.Logger
}

func NewService(
	notificationRepo ports.NotificationRepository,
	cache ports.Cache,
	pusher ports.NotificationPusher,
	log *zap.Logger,
) ports.NotificationService {
	return &Service{
		notificationRepo: notificationRepo,
		cache:            cache,
		pusher:           pusher,
		log:              log,
	}
}

// RecordRecipients writes one unread ledger row per recipient. IN_APP
// campaigns additionally get a best-effort real-time push to any connected
// client of each recipient.
func (s *Service) RecordRecipients(ctx context.Context, campaignID string, channel domain.Channel, recipients []domain.Recipient) error {
	if len(recipients) == 0 {
		return nil
	}

	now := time.Now()
	records := make([]domain.NotificationRecord, 0, len(recipients))
	for _, recipient := range recipients {
		records = append(records, domain.NotificationRecord{
			ID:         uuid.NewString(),
			UserID:     recipient.ID,
			CampaignID: campaignID,
			Channel:    channel,
			IsRead:     false,
			CreatedAt:  now,
		})
	}

	if err := s.notificationRepo.InsertBatch(ctx, records); err != nil {
		return err
	}
	telemetry.NotificationsRecordedTotal.Add(float64(len(records)))

	if channel == domain.ChannelInApp {
		payload, err := json.Marshal(map[string]interface{}{
			"type":        "notification",
			"campaign_id": campaignID,
			"created_at":  now,
		})
		if err == nil && s.pusher != nil {
			for _, recipient := range recipients {
				s.pusher.PushToUser(recipient.ID, payload)
			}
		}
		for _, recipient := range recipients {
			s.invalidateUnread(ctx, recipient.ID)
		}
	}

	s.log.Info("Notification ledger written",
		zap.String("campaign_id", campaignID),
		zap.String("channel", string(channel)),
		zap.Int("recipients", len(records)),
	)
	return nil
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.NotificationEntry, error) {
	return s.notificationRepo.FindByUser(ctx, userID)
}

// UnreadCount returns the number of unread IN_APP notifications, cached for
// a short window since badge polling dominates this endpoint.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if cached, err := s.cache.Get(ctx, unreadKeyPrefix+userID); err == nil && cached != "" {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnreadInApp(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, unreadKeyPrefix+userID, strconv.FormatInt(count, 10), unreadCacheTTL); err != nil {
		s.log.Warn("Failed to cache unread count", zap.String("user_id", userID), zap.Error(err))
	}

	return count, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// MarkRead is idempotent: marking an already-read or absent notification
// succeeds without effect.
func (s *Service) MarkRead(ctx context.Context, userID, campaignID string) error {
	changed, err := s.notificationRepo.MarkRead(ctx, userID, campaignID)
	if err != nil {
		return err
	}
	if changed {
		s.invalidateUnread(ctx, userID)
	}
	return nil
}

func (s *Service) invalidateUnread(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, unreadKeyPrefix+userID); err != nil {
		s.log.Warn("Failed to invalidate unread count cache", zap.String("user_id", userID), zap.Error(err))
	}
}

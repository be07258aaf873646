package domain

import (
	"time"
)

// NotificationRecord is one ledger row per (user, campaign) pair, written at
// launch time. IsRead is only meaningful for IN_APP campaigns but is recorded
// uniformly for every channel.
type NotificationRecord struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index:idx_user_campaign,unique"`
	CampaignID string    `json:"campaign_id" gorm:"index:idx_user_campaign,unique"`
	Channel    Channel   `json:"channel"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationEntry is a ledger row joined with its campaign content, as
// returned by the history endpoint.
type NotificationEntry struct {
	CampaignID string    `json:"campaign_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Channel    Channel   `json:"channel"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

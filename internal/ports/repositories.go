package ports

import (
	"context"

	"github.com/bna-assurances/campaignhub/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByResetToken(ctx context.Context, tokenDigest string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	// FindRecipients returns the Client users matching the conjunctive
	// criteria filter, in store order.
	FindRecipients(ctx context.Context, criteria domain.Criteria) ([]domain.Recipient, error)
	// UpdateFields applies a partial update and reports whether a row matched.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CampaignRepository interface {
	Save(ctx context.Context, campaign *domain.Campaign) error
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	// FindAllWithScheduler lists campaigns joined with the scheduling user's
	// name, newest first.
	FindAllWithScheduler(ctx context.Context) ([]domain.CampaignSummary, error)
	FindByIDWithScheduler(ctx context.Context, id string) (*domain.CampaignSummary, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	// UpdateStatusIf transitions the campaign to next only if its current
	// status is one of allowed, reporting whether a row was claimed. The
	// affected-row check is the single-flight guard against concurrent
	// launches of the same campaign.
	UpdateStatusIf(ctx context.Context, id string, next domain.CampaignStatus, allowed ...domain.CampaignStatus) (bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type NotificationRepository interface {
	// InsertBatch writes one ledger row per recipient with is_read=false.
	InsertBatch(ctx context.Context, records []domain.NotificationRecord) error
	FindByUser(ctx context.Context, userID string) ([]domain.NotificationEntry, error)
	CountUnreadInApp(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	// MarkRead flips a single (user, campaign) row to read, reporting whether
	// a row changed. Absent or already-read rows are not an error.
	MarkRead(ctx context.Context, userID, campaignID string) (bool, error)
}
